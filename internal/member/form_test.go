package member

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetulr/talawa-admin/internal/api"
	"github.com/meetulr/talawa-admin/internal/store"
)

// 1x1 transparent PNG.
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func TestValidateReportsEachBlankField(t *testing.T) {
	f := Form{FirstName: "  ", LastName: "", Email: "\t"}
	assert.Equal(t, []string{
		"First Name cannot be blank!",
		"Last Name cannot be blank!",
		"Email cannot be blank!",
	}, f.Validate())
}

func TestValidateSingleBlankField(t *testing.T) {
	f := Form{FirstName: "Ada", LastName: "Lovelace", Email: ""}
	assert.Equal(t, []string{"Email cannot be blank!"}, f.Validate())
}

func TestValidatePasses(t *testing.T) {
	f := Form{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	assert.Empty(t, f.Validate())
}

func TestValidateRejectsMalformedBirthDate(t *testing.T) {
	f := Form{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", BirthDate: "14/03/2020"}
	assert.Equal(t, []string{"Birth Date must be YYYY-MM-DD"}, f.Validate())

	f.BirthDate = "2020-03-14"
	assert.Empty(t, f.Validate())
}

func TestFromMemberAndToUpdateInput(t *testing.T) {
	var m api.Member
	m.ID = "u1"
	m.FirstName = "Ada"
	m.LastName = "Lovelace"
	m.Email = "ada@example.com"
	m.Gender = "FEMALE"
	m.Phone.Mobile = "5550100"
	m.Address.Line1 = "1 Analytical Way"
	m.Address.City = "London"
	m.Address.CountryCode = "GB"
	m.Profile.AppLanguageCode = "fr"
	m.Profile.PluginCreationAllowed = true

	f := FromMember(m)
	assert.Equal(t, DefaultBirthDate, f.BirthDate)
	assert.Equal(t, "5550100", f.PhoneNumber)

	in := f.ToUpdateInput("u1")
	assert.Equal(t, "u1", in.ID)
	assert.Equal(t, "Ada", in.FirstName)
	assert.Equal(t, "FEMALE", in.Gender)
	assert.Equal(t, "1 Analytical Way", in.Address)
	assert.Equal(t, "London", in.City)
	assert.Equal(t, "GB", in.CountryCode)
	assert.Equal(t, "fr", in.AppLanguageCode)
	assert.True(t, in.PluginCreationAllowed)
}

func TestFromMemberTrimsTimestampBirthDate(t *testing.T) {
	var m api.Member
	m.BirthDate = "1990-05-01T00:00:00.000Z"
	assert.Equal(t, "1990-05-01", FromMember(m).BirthDate)
}

func TestCacheItems(t *testing.T) {
	f := Form{FirstName: "Ada", LastName: "L", Email: "a@x", Image: "data:image/png;base64,AA=="}
	assert.Equal(t, map[string]string{
		store.KeyFirstName: "Ada",
		store.KeyLastName:  "L",
		store.KeyEmail:     "a@x",
		store.KeyUserImage: "data:image/png;base64,AA==",
	}, f.CacheItems())
}

func TestEncodeImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avatar.bin")
	require.NoError(t, os.WriteFile(path, pngPixel, 0600))

	url, err := EncodeImage(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,iVBORw0KGgo"), url)
}

func TestEncodeImageRejectsNonImages(t *testing.T) {
	_, err := EncodeImageBytes([]byte("just some text"))
	assert.ErrorContains(t, err, "not an image")

	_, err = EncodeImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorContains(t, err, "read image")
}

func TestPrettyDate(t *testing.T) {
	assert.Equal(t, "5 March 2024", PrettyDate("2024-03-05T10:00:00.000Z"))
	assert.Equal(t, "14 March 2020", PrettyDate("2020-03-14"))
	assert.Equal(t, "Unavailable", PrettyDate(""))
	assert.Equal(t, "Unavailable", PrettyDate("not a date"))
}
