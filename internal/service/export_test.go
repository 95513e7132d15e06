package service_test

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-user-admin/internal/domain"
	"go-user-admin/internal/service"
)

func exportUsers() []domain.User {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []domain.User{
		{ID: "1", Name: "Alice Johnson", Email: "alice@example.com", Role: "USER",
			Phone: "555-0101", Department: "Engineering", Active: true,
			CreatedBy: "system", UpdatedBy: "system", CreatedAt: now, UpdatedAt: now},
		{ID: "2", Name: "Bob Smith", Email: "bob@example.com", Role: "ADMIN",
			Active: false, CreatedBy: "system", UpdatedBy: "system", CreatedAt: now, UpdatedAt: now},
	}
}

func TestExport_UnsupportedFormat(t *testing.T) {
	_, _, err := service.Export(exportUsers(), "yaml")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	_, _, err = service.Export(exportUsers(), "")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestExport_FormatTokenCaseInsensitive(t *testing.T) {
	for _, format := range []string{"JSON", "Csv", " xml "} {
		_, _, err := service.Export(exportUsers(), format)
		assert.NoError(t, err, "format %q", format)
	}
}

func TestExportJSON_RoundTrip(t *testing.T) {
	users := exportUsers()
	payload, contentType, err := service.Export(users, "json")
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)

	var back []domain.User
	require.NoError(t, json.Unmarshal([]byte(payload), &back))
	require.Len(t, back, len(users))
	for i := range users {
		assert.Equal(t, users[i].ID, back[i].ID)
		assert.Equal(t, users[i].Email, back[i].Email)
		assert.Equal(t, users[i].Role, back[i].Role)
		assert.Equal(t, users[i].Active, back[i].Active)
	}
}

func TestExportJSON_EmptyCollection(t *testing.T) {
	payload, _, err := service.Export(nil, "json")
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(payload))
}

func TestExportCSV(t *testing.T) {
	payload, contentType, err := service.Export(exportUsers(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)

	rows, err := csv.NewReader(strings.NewReader(payload)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per user")
	assert.Equal(t, []string{
		"id", "name", "email", "role", "phone", "department",
		"active", "createdBy", "updatedBy", "createdAt", "updatedAt",
	}, rows[0])
	assert.Equal(t, "alice@example.com", rows[1][2])
	assert.Equal(t, "true", rows[1][6])
	assert.Equal(t, "", rows[2][4], "absent phone rendered empty")
	assert.Equal(t, "false", rows[2][6])
}

func TestExportXML(t *testing.T) {
	payload, contentType, err := service.Export(exportUsers(), "xml")
	require.NoError(t, err)
	assert.Equal(t, "application/xml", contentType)
	assert.True(t, strings.HasPrefix(payload, xml.Header))
	assert.Contains(t, payload, "<users>")
	assert.Equal(t, 2, strings.Count(payload, "<user>"))
	assert.Contains(t, payload, "<email>alice@example.com</email>")
	assert.Contains(t, payload, "<active>false</active>")
}

func TestExport_Deterministic(t *testing.T) {
	for _, format := range []string{"json", "csv", "xml"} {
		a, _, err := service.Export(exportUsers(), format)
		require.NoError(t, err)
		b, _, err := service.Export(exportUsers(), format)
		require.NoError(t, err)
		assert.Equal(t, a, b, "format %q", format)
	}
}
