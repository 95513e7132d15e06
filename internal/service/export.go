package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-user-admin/internal/domain"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXML  = "xml"
)

var csvHeader = []string{
	"id", "name", "email", "role", "phone", "department",
	"active", "createdBy", "updatedBy", "createdAt", "updatedAt",
}

// Export renders the collection in the requested format (case-insensitive
// token) and returns the payload plus its content type. Field order is
// fixed, one record per row/element.
func Export(users []domain.User, format string) (string, string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		out, err := exportJSON(users)
		return out, "application/json", err
	case FormatCSV:
		out, err := exportCSV(users)
		return out, "text/csv", err
	case FormatXML:
		out, err := exportXML(users)
		return out, "application/xml", err
	default:
		return "", "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
}

func exportJSON(users []domain.User) (string, error) {
	if users == nil {
		users = []domain.User{}
	}
	b, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func exportCSV(users []domain.User) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, u := range users {
		rec := []string{
			u.ID, u.Name, u.Email, u.Role, u.Phone, u.Department,
			strconv.FormatBool(u.Active), u.CreatedBy, u.UpdatedBy,
			u.CreatedAt.Format(time.RFC3339), u.UpdatedAt.Format(time.RFC3339),
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

type xmlUser struct {
	ID         string `xml:"id"`
	Name       string `xml:"name"`
	Email      string `xml:"email"`
	Role       string `xml:"role"`
	Phone      string `xml:"phone"`
	Department string `xml:"department"`
	Active     bool   `xml:"active"`
	CreatedBy  string `xml:"createdBy"`
	UpdatedBy  string `xml:"updatedBy"`
	CreatedAt  string `xml:"createdAt"`
	UpdatedAt  string `xml:"updatedAt"`
}

type xmlUsers struct {
	XMLName xml.Name  `xml:"users"`
	Users   []xmlUser `xml:"user"`
}

func exportXML(users []domain.User) (string, error) {
	doc := xmlUsers{Users: make([]xmlUser, 0, len(users))}
	for _, u := range users {
		doc.Users = append(doc.Users, xmlUser{
			ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role,
			Phone: u.Phone, Department: u.Department, Active: u.Active,
			CreatedBy: u.CreatedBy, UpdatedBy: u.UpdatedBy,
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
			UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
		})
	}
	b, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return xml.Header + string(b), nil
}

// ExportUsers fetches the full collection and renders it.
func (s *UserService) ExportUsers(ctx context.Context, format string) (string, string, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return "", "", err
	}
	return Export(users, format)
}
