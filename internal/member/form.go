package member

import (
	"encoding/base64"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"

	"github.com/meetulr/talawa-admin/internal/api"
	"github.com/meetulr/talawa-admin/internal/store"
)

// DefaultBirthDate fills the date field when the record has none.
const DefaultBirthDate = "2020-03-14"

// Form is the editable member profile.
type Form struct {
	FirstName             string `label:"First Name" validate:"required"`
	LastName              string `label:"Last Name" validate:"required"`
	Email                 string `label:"Email" validate:"required"`
	AppLanguageCode       string
	Image                 string
	Gender                string
	BirthDate             string `label:"Birth Date" validate:"omitempty,datetime=2006-01-02"`
	EducationGrade        string
	EmploymentStatus      string
	MaritalStatus         string
	PhoneNumber           string
	Address               string
	City                  string
	State                 string
	CountryCode           string
	PluginCreationAllowed bool
}

var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	return v
}()

// FromMember fills a form from a fetched record.
func FromMember(m api.Member) Form {
	f := Form{
		FirstName:             m.FirstName,
		LastName:              m.LastName,
		Email:                 m.Email,
		AppLanguageCode:       m.Profile.AppLanguageCode,
		Image:                 m.Image,
		Gender:                m.Gender,
		BirthDate:             m.BirthDate,
		EducationGrade:        m.EducationGrade,
		EmploymentStatus:      m.EmploymentStatus,
		MaritalStatus:         m.MaritalStatus,
		PhoneNumber:           m.Phone.Mobile,
		Address:               m.Address.Line1,
		City:                  m.Address.City,
		State:                 m.Address.State,
		CountryCode:           m.Address.CountryCode,
		PluginCreationAllowed: m.Profile.PluginCreationAllowed,
	}
	if f.BirthDate == "" {
		f.BirthDate = DefaultBirthDate
	} else if len(f.BirthDate) > 10 {
		if t, err := time.Parse(time.RFC3339, f.BirthDate); err == nil {
			f.BirthDate = t.Format(time.DateOnly)
		}
	}
	return f
}

// Validate returns one warning per invalid field, in form order.
// Whitespace-only values count as blank.
func (f Form) Validate() []string {
	trimmed := f
	trimmed.FirstName = strings.TrimSpace(f.FirstName)
	trimmed.LastName = strings.TrimSpace(f.LastName)
	trimmed.Email = strings.TrimSpace(f.Email)

	err := validate.Struct(trimmed)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	warnings := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			warnings = append(warnings, fmt.Sprintf("%s cannot be blank!", fe.Field()))
		case "datetime":
			warnings = append(warnings, fmt.Sprintf("%s must be YYYY-MM-DD", fe.Field()))
		default:
			warnings = append(warnings, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return warnings
}

// ToUpdateInput builds the full-form mutation input for member id.
func (f Form) ToUpdateInput(id string) api.UpdateMemberInput {
	return api.UpdateMemberInput{
		ID:                    id,
		FirstName:             f.FirstName,
		LastName:              f.LastName,
		Email:                 f.Email,
		Image:                 f.Image,
		Gender:                f.Gender,
		BirthDate:             f.BirthDate,
		EducationGrade:        f.EducationGrade,
		EmploymentStatus:      f.EmploymentStatus,
		MaritalStatus:         f.MaritalStatus,
		PhoneNumber:           f.PhoneNumber,
		Address:               f.Address,
		City:                  f.City,
		State:                 f.State,
		CountryCode:           f.CountryCode,
		AppLanguageCode:       f.AppLanguageCode,
		PluginCreationAllowed: f.PluginCreationAllowed,
	}
}

// CacheItems are the local cache pairs refreshed after the signed-in member
// edits their own profile.
func (f Form) CacheItems() map[string]string {
	return map[string]string{
		store.KeyFirstName: f.FirstName,
		store.KeyLastName:  f.LastName,
		store.KeyEmail:     f.Email,
		store.KeyUserImage: f.Image,
	}
}

// EncodeImage reads an image file and returns it as a base64 data URL.
func EncodeImage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return EncodeImageBytes(data)
}

// EncodeImageBytes encodes raw image bytes as a data URL. The MIME type is
// detected from content; non-image content is rejected.
func EncodeImageBytes(data []byte) (string, error) {
	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", fmt.Errorf("not an image: %s", mime.String())
	}
	return "data:" + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, time.DateTime, time.DateOnly}

// PrettyDate renders a timestamp as "d Month yyyy", or "Unavailable" when it
// cannot be parsed.
func PrettyDate(s string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2 January 2006")
		}
	}
	return "Unavailable"
}
