package registry

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/okian/trademarks/internal/domain/model"
)

// Record is a trademark as the registry returns it. Pointer and slice
// fields stay nil when the registry omits them, so absence can be detected.
type Record struct {
	ID               *string    `json:"id"`
	Name             *string    `json:"name"`
	Description      *string    `json:"description"`
	RegistrationDate *Timestamp `json:"registrationDate"`
	ExpirationDate   *Timestamp `json:"expirationDate"`
	Status           *string    `json:"status"`
	Owner            *string    `json:"owner"`
	Classes          []int      `json:"classes"`
	CountryCodes     []string   `json:"countryCodes"`
}

// localLayout is ISO 8601 without a zone offset, as some registries emit.
const localLayout = "2006-01-02T15:04:05.999999999"

// Timestamp decodes RFC 3339 and falls back to zone-less ISO 8601 read as UTC.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.ParseInLocation(localLayout, raw, time.UTC)
	if err != nil {
		return fmt.Errorf("parsing time %q: %w", raw, err)
	}
	t.Time = parsed
	return nil
}

type searchResponse struct {
	Results []Record `json:"results"`
}

// Trademark converts a full registry record, failing on any missing
// required field or unknown status.
func (r Record) Trademark() (model.Trademark, error) {
	tm, err := r.Core()
	if err != nil {
		return model.Trademark{}, err
	}
	if r.RegistrationDate == nil {
		return model.Trademark{}, missingField("registrationDate")
	}
	if r.Status == nil {
		return model.Trademark{}, missingField("status")
	}
	status, err := model.ParseStatus(*r.Status)
	if err != nil {
		return model.Trademark{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	tm.RegistrationDate = r.RegistrationDate.Time
	if r.ExpirationDate != nil {
		exp := r.ExpirationDate.Time
		tm.ExpirationDate = &exp
	}
	tm.Status = status
	return tm, nil
}

// Core converts the registry-assigned id and the submitted fields only.
// Dates and status are left for the caller to fill in.
func (r Record) Core() (model.Trademark, error) {
	switch {
	case r.ID == nil:
		return model.Trademark{}, missingField("id")
	case r.Name == nil:
		return model.Trademark{}, missingField("name")
	case r.Owner == nil:
		return model.Trademark{}, missingField("owner")
	case r.Classes == nil:
		return model.Trademark{}, missingField("classes")
	case r.CountryCodes == nil:
		return model.Trademark{}, missingField("countryCodes")
	}
	return model.Trademark{
		ID:           *r.ID,
		Name:         *r.Name,
		Description:  r.Description,
		Owner:        *r.Owner,
		Classes:      r.Classes,
		CountryCodes: r.CountryCodes,
	}, nil
}
