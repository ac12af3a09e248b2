package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/core/domain"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		lang, std string
		kind      domain.LanguageKind
		expected  domain.Standard
	}{
		{"", "", domain.LangCXX, 17},
		{"c", "", domain.LangC, 17},
		{"c", "99", domain.LangC, 99},
		{"C", "c11", domain.LangC, 11},
		{"c++", "20", domain.LangCXX, 20},
		{"cpp", "c++03", domain.LangCXX, 3},
		{"c++", "2023", domain.LangCXX, 23},
		{"c++", "latest", domain.LangCXX, domain.StandardLatest},
		{"c", "latest", domain.LangC, domain.StandardLatest},
	}

	for _, tt := range tests {
		t.Run(tt.lang+"/"+tt.std, func(t *testing.T) {
			l, err := domain.ParseLanguage(tt.lang, tt.std)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, l.Kind)
			assert.Equal(t, tt.expected, l.Standard)
		})
	}
}

func TestParseLanguage_Errors(t *testing.T) {
	_, err := domain.ParseLanguage("rust", "")
	require.ErrorIs(t, err, domain.ErrInvalidLanguage)

	_, err = domain.ParseLanguage("c", "20")
	require.ErrorIs(t, err, domain.ErrInvalidStandard)

	_, err = domain.ParseLanguage("c++", "next")
	require.ErrorIs(t, err, domain.ErrInvalidStandard)
}

func TestStandard_Ordering(t *testing.T) {
	assert.True(t, domain.Standard(98).Before(3))
	assert.True(t, domain.Standard(3).Before(11))
	assert.True(t, domain.Standard(89).Before(99))
	assert.True(t, domain.Standard(99).Before(11))
	assert.True(t, domain.Standard(26).Before(domain.StandardLatest))
	assert.Equal(t, "03", domain.Standard(3).String())
	assert.Equal(t, "latest", domain.StandardLatest.String())
}

func TestLanguage_SourceExts(t *testing.T) {
	assert.Equal(t, []string{".c"}, domain.Language{Kind: domain.LangC}.SourceExts())
	assert.Contains(t, domain.Language{Kind: domain.LangCXX}.SourceExts(), ".cpp")
	assert.NotContains(t, domain.Language{Kind: domain.LangCXX}.SourceExts(), ".c")
}
