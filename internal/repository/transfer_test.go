package repository

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/skillswap/skillswap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func browserDump() map[string]string {
	return map[string]string{
		"skillswap_currentPage":    "3",
		"skillswap_users":          `[{"id":"user-a","fullName":"Alice","email":"alice@example.com","password":"secret1","address":"","city":"Recife","profession":"Yoga"}]`,
		"skillswap_currentUser":    `{"id":"user-a","fullName":"Alice","email":"alice@example.com","password":"secret1","address":"","city":"Recife","profession":"Yoga"}`,
		"skillswap_citySearchText": `"Recife"`,
		"theme":                    "dark",
	}
}

func TestImportDump(t *testing.T) {
	kv := NewMemoryKV()

	report, err := ImportDump(kv, browserDump(), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"theme"}, report.Skipped)
	assert.Len(t, report.Imported, 4)

	st := NewStateRepository(kv, zerolog.Nop()).Load()
	assert.Equal(t, domain.PageDashboard, st.Page)
	require.Len(t, st.Users, 1)
	require.NotNil(t, st.CurrentUser)
	assert.Equal(t, "user-a", st.CurrentUser.ID)
	assert.Equal(t, "Recife", st.Filters.City)
}

func TestImportDump_DryRunWritesNothing(t *testing.T) {
	kv := NewMemoryKV()

	report, err := ImportDump(kv, browserDump(), true)
	require.NoError(t, err)
	assert.Len(t, report.Imported, 4)

	all, err := kv.Dump()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestImportDump_InvalidJSONAborts(t *testing.T) {
	kv := NewMemoryKV()
	dump := browserDump()
	dump["skillswap_users"] = "[{broken"

	_, err := ImportDump(kv, dump, false)
	assert.Error(t, err)

	all, err := kv.Dump()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestExportDump(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Write("unrelated", []byte("1")))
	_, err := ImportDump(kv, browserDump(), false)
	require.NoError(t, err)

	out, err := ExportDump(kv)
	require.NoError(t, err)
	assert.NotContains(t, out, "unrelated")
	assert.Equal(t, `"Recife"`, out["skillswap_citySearchText"])
	assert.Equal(t, "3", out["skillswap_currentPage"])
}
