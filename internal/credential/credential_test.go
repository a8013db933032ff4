package credential

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCredentialFile = `
[zabbix]
url = 'http://zabbix.example.com/'
user = "admin"
password = 's3cr#t;x'

[staging]
url = http://staging.example.com/zabbix/

[broken]
user = 'nobody'

[badquote]
url = 'http://unterminated/
`

func writeCredentials(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".zabbix")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCredentials(t, testCredentialFile)

	creds, err := Load(path, "zabbix")
	require.NoError(t, err)

	assert.Equal(t, "zabbix", creds.Section())
	assert.Equal(t, "http://zabbix.example.com/", creds.URL())

	user, ok := creds.Get("user")
	assert.True(t, ok)
	assert.Equal(t, "admin", user)

	pass, _ := creds.Get("password")
	assert.Equal(t, "s3cr#t;x", pass, "comment characters inside values are data")

	assert.Equal(t, []string{"password", "url", "user"}, creds.Keys())
}

func TestLoadUnquotedValue(t *testing.T) {
	path := writeCredentials(t, testCredentialFile)

	creds, err := Load(path, "staging")
	require.NoError(t, err)
	assert.Equal(t, "http://staging.example.com/zabbix/", creds.URL())
}

func TestLoadKeyCase(t *testing.T) {
	path := writeCredentials(t, "[zabbix]\nURL = 'http://zabbix.example.com/'\nUser = admin\n\n[Upper]\nurl = http://upper.example.com/\n")

	creds, err := Load(path, "zabbix")
	require.NoError(t, err)
	assert.Equal(t, "http://zabbix.example.com/", creds.URL())
	assert.Equal(t, []string{"url", "user"}, creds.Keys())

	_, err = Load(path, "upper")
	assert.ErrorIs(t, err, ErrSectionNotFound, "section names keep their case")

	_, err = Load(path, "Upper")
	assert.NoError(t, err)
}

func TestLoadMissingSection(t *testing.T) {
	path := writeCredentials(t, testCredentialFile)

	_, err := Load(path, "production")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSectionNotFound)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "production", cfgErr.Section)
	assert.Equal(t, path, cfgErr.Path)
}

func TestLoadMissingURL(t *testing.T) {
	path := writeCredentials(t, testCredentialFile)

	_, err := Load(path, "broken")
	assert.ErrorIs(t, err, ErrMissingURL)
}

func TestLoadUnterminatedQuote(t *testing.T) {
	path := writeCredentials(t, testCredentialFile)

	_, err := Load(path, "badquote")
	assert.ErrorIs(t, err, ErrBadValue)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"), "zabbix")
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "plain", want: "plain"},
		{raw: "  padded  ", want: "padded"},
		{raw: "'single'", want: "single"},
		{raw: `"double"`, want: "double"},
		{raw: `"tab\there"`, want: "tab\there"},
		{raw: "''", want: ""},
		{raw: "x", want: "x"},
		{raw: "__import__('os')", want: "__import__('os')"},
	}

	for _, tt := range tests {
		got, err := parseLiteral(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}
