package entity

import "time"

// Lead is a captured contact/inquiry record.
// ID and CreatedAt are assigned by the store on insert and never change.
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Company   *string   `json:"company,omitempty"`
	Message   *string   `json:"message,omitempty"`
	Source    Source    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}

// Source is where a lead came from.
type Source string

const (
	SourceWebsite   Source = "Website"
	SourceInstagram Source = "Instagram"
	SourceReferral  Source = "Referral"
	SourceOther     Source = "Other"

	DefaultSource = SourceWebsite
)

// Sources lists every accepted source in display order.
func Sources() []Source {
	return []Source{SourceWebsite, SourceInstagram, SourceReferral, SourceOther}
}

func (s Source) Valid() bool {
	for _, v := range Sources() {
		if s == v {
			return true
		}
	}
	return false
}
