package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("en"))
	assert.True(t, IsSupported("ru"))
	assert.True(t, IsSupported("en-GB"))
	assert.False(t, IsSupported("de"))
	assert.False(t, IsSupported(""))
	assert.False(t, IsSupported("english"))
}

func TestLanguage(t *testing.T) {
	c := New("en")

	tests := []struct {
		header string
		want   language.Tag
	}{
		{header: "", want: language.English},
		{header: "ru-RU,ru;q=0.9,en;q=0.8", want: language.Russian},
		{header: "en-GB", want: language.English},
		{header: "de-DE", want: language.English},
		{header: "de;q=0.9,ru;q=0.5", want: language.Russian},
		{header: ";;;garbage", want: language.English},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Language(tt.header), tt.header)
	}
}

func TestDefaultLocale(t *testing.T) {
	assert.Equal(t, language.Russian, New("ru").Default())
	assert.Equal(t, language.English, New("xx-invalid-").Default())
	assert.Equal(t, language.English, New("ja").Default())

	c := New("ru")
	assert.Equal(t, language.Russian, c.Language("de"))
	assert.Equal(t, language.English, c.Language("en-US"))
}

func TestText(t *testing.T) {
	c := New("en")

	r := httptest.NewRequest("GET", "/", nil)
	assert.Equal(t, "Invalid username or password", c.Text(r, BadCredentials))

	r.Header.Set("Accept-Language", "ru")
	assert.Equal(t, "Неверное имя пользователя или пароль", c.Text(r, BadCredentials))
}

func TestEveryKeyTranslated(t *testing.T) {
	en := entries[language.English]
	for _, tag := range Supported() {
		msgs := entries[tag]
		assert.Len(t, msgs, len(en), tag.String())
		for key := range en {
			assert.NotEmpty(t, msgs[key], "%s missing %s", tag, key)
		}
	}
}
