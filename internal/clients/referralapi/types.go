package referralapi

import "time"

// Wire DTOs for the referral service. Field names mirror the backend's
// JSON contract exactly and must not be renamed: the service and its
// other consumers already agree on them. The only values this layer
// rewrites are the two encrypted free-text fields.

// StatusName is the closed set of referral statuses this layer knows
// about. StatusUnknown is a defensive variant used when the backend's
// status catalog does not contain a requested name; it is never a
// legitimate business state.
type StatusName string

const (
	StatusNew      StatusName = "New"
	StatusAccepted StatusName = "Accepted"
	StatusDeclined StatusName = "Declined"
	StatusUnknown  StatusName = "Unknown"
)

// ReferralStatus is one entry of the backend's status catalog. SortOrder
// drives UI ordering only, never business logic.
type ReferralStatus struct {
	ID        int64  `json:"Id"`
	Name      string `json:"Name"`
	SortOrder int    `json:"SortOrder"`
}

// Recipient identifies the family member the request is about.
type Recipient struct {
	ID           int64  `json:"Id"`
	Name         string `json:"Name"`
	Email        string `json:"Email,omitempty"`
	Telephone    string `json:"Telephone,omitempty"`
	TextPhone    string `json:"TextPhone,omitempty"`
	AddressLine1 string `json:"AddressLine1,omitempty"`
	AddressLine2 string `json:"AddressLine2,omitempty"`
	TownOrCity   string `json:"TownOrCity,omitempty"`
	County       string `json:"County,omitempty"`
	PostCode     string `json:"PostCode,omitempty"`
}

// UserAccount is the referring professional's account record.
type UserAccount struct {
	ID           int64  `json:"Id"`
	EmailAddress string `json:"EmailAddress,omitempty"`
	Name         string `json:"Name,omitempty"`
	PhoneNumber  string `json:"PhoneNumber,omitempty"`
	Team         string `json:"Team,omitempty"`
}

// Organisation owns the service a referral is routed to.
type Organisation struct {
	ID                int64  `json:"Id"`
	ReferralServiceID int64  `json:"ReferralServiceId"`
	Name              string `json:"Name"`
	Description       string `json:"Description,omitempty"`
}

// Service describes the support service the family was referred to.
type Service struct {
	ID           int64        `json:"Id"`
	Name         string       `json:"Name"`
	Description  string       `json:"Description,omitempty"`
	URL          string       `json:"Url,omitempty"`
	Organisation Organisation `json:"OrganisationDto"`
}

// Referral is a single request for support.
//
// ReasonForSupport and EngageWithFamily are stored and transmitted as
// ciphertext; the client decrypts them on every read and encrypts them on
// every write, so in-process values are always plaintext.
// ReasonForDecliningSupport is set if and only if the status is Declined.
type Referral struct {
	ID                        int64          `json:"Id"`
	ReasonForSupport          string         `json:"ReasonForSupport"`
	EngageWithFamily          string         `json:"EngageWithFamily"`
	ReasonForDecliningSupport *string        `json:"ReasonForDecliningSupport,omitempty"`
	Status                    ReferralStatus `json:"Status"`
	Recipient                 Recipient      `json:"RecipientDto"`
	Referrer                  UserAccount    `json:"ReferralUserAccountDto"`
	Service                   Service        `json:"ReferralServiceDto"`
	Created                   *time.Time     `json:"Created,omitempty"`
}

// PaginatedReferrals is the backend's paging envelope. PageNumber is
// 1-based; the metadata is passed through untouched so the caller sees
// exactly what the service reported.
type PaginatedReferrals struct {
	Items      []Referral `json:"Items"`
	PageNumber int        `json:"PageNumber"`
	TotalPages int        `json:"TotalPages"`
	TotalCount int        `json:"TotalCount"`
}

// OrderBy is the backend-recognised ordering parameter.
type OrderBy string

const (
	OrderByRecipientName OrderBy = "RecipientName"
	OrderByDateSent      OrderBy = "DateSent"
	OrderByStatus        OrderBy = "Status"
)
