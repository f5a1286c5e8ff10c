package profile

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"hrms/internal/domain/auth"
	"hrms/internal/platform/sanitize"
)

const (
	FieldFirstName      = "personalDetails.firstName"
	FieldLastName       = "personalDetails.lastName"
	FieldPhone          = "personalDetails.phone"
	FieldAddress        = "personalDetails.address"
	FieldDesignation    = "jobDetails.designation"
	FieldDepartment     = "jobDetails.department"
	FieldJoiningDate    = "jobDetails.joiningDate"
	FieldBaseSalary     = "salaryStructure.baseSalary"
	FieldProfilePicture = "profilePicture"
	FieldDocuments      = "documents"
)

var employeeFields = map[string]bool{
	FieldPhone:          true,
	FieldAddress:        true,
	FieldProfilePicture: true,
}

var hrFields = map[string]bool{
	FieldFirstName:      true,
	FieldLastName:       true,
	FieldPhone:          true,
	FieldAddress:        true,
	FieldDesignation:    true,
	FieldDepartment:     true,
	FieldJoiningDate:    true,
	FieldBaseSalary:     true,
	FieldProfilePicture: true,
	FieldDocuments:      true,
}

// Update is a partial profile change. Nil fields are left untouched.
type Update struct {
	FirstName      *string
	LastName       *string
	Phone          *string
	Address        *string
	Designation    *string
	Department     *string
	JoiningDate    *time.Time
	BaseSalary     *string
	ProfilePicture *string
	Documents      *[]string
}

func (u Update) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Phone == nil && u.Address == nil &&
		u.Designation == nil && u.Department == nil && u.JoiningDate == nil && u.BaseSalary == nil &&
		u.ProfilePicture == nil && u.Documents == nil
}

// Fields lists the dotted paths set in u.
func (u Update) Fields() []string {
	var out []string
	add := func(set bool, field string) {
		if set {
			out = append(out, field)
		}
	}
	add(u.FirstName != nil, FieldFirstName)
	add(u.LastName != nil, FieldLastName)
	add(u.Phone != nil, FieldPhone)
	add(u.Address != nil, FieldAddress)
	add(u.Designation != nil, FieldDesignation)
	add(u.Department != nil, FieldDepartment)
	add(u.JoiningDate != nil, FieldJoiningDate)
	add(u.BaseSalary != nil, FieldBaseSalary)
	add(u.ProfilePicture != nil, FieldProfilePicture)
	add(u.Documents != nil, FieldDocuments)
	return out
}

// AllowedFields lists the dotted paths role may write.
func AllowedFields(role string) []string {
	source := employeeFields
	if auth.IsHR(role) {
		source = hrFields
	}
	out := make([]string, 0, len(source))
	for field := range source {
		out = append(out, field)
	}
	sort.Strings(out)
	return out
}

// ParseUpdate turns dotted-path updates into an Update. Employees silently
// lose keys outside their allow-list; HR gets a FieldError for unknown keys.
// Nested objects are flattened first, so {"personalDetails":{"phone":"1"}}
// and {"personalDetails.phone":"1"} are equivalent.
func ParseUpdate(role string, raw map[string]any) (Update, error) {
	flat := map[string]any{}
	flatten("", raw, flat)

	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var upd Update
	for _, key := range keys {
		value := flat[key]
		if !auth.IsHR(role) {
			if !employeeFields[key] {
				continue
			}
		} else if !hrFields[key] {
			return Update{}, &FieldError{Field: key, Reason: "field cannot be updated"}
		}

		if err := assign(&upd, key, value); err != nil {
			return Update{}, err
		}
	}
	return upd, nil
}

func flatten(prefix string, in map[string]any, out map[string]any) {
	for key, value := range in {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flatten(path, nested, out)
			continue
		}
		out[path] = value
	}
}

func assign(upd *Update, key string, value any) error {
	switch key {
	case FieldDocuments:
		docs, err := stringList(key, value)
		if err != nil {
			return err
		}
		upd.Documents = &docs
		return nil
	case FieldJoiningDate:
		text, err := stringValue(key, value)
		if err != nil {
			return err
		}
		parsed, err := parseDate(text)
		if err != nil {
			return &FieldError{Field: key, Reason: "must be a date (YYYY-MM-DD)"}
		}
		upd.JoiningDate = &parsed
		return nil
	case FieldBaseSalary:
		if number, ok := value.(float64); ok {
			if number < 0 {
				return &FieldError{Field: key, Reason: "must not be negative"}
			}
			text := strconv.FormatFloat(number, 'f', -1, 64)
			upd.BaseSalary = &text
			return nil
		}
	}

	text, err := stringValue(key, value)
	if err != nil {
		return err
	}
	text = sanitize.Text(text)

	switch key {
	case FieldFirstName:
		upd.FirstName = &text
	case FieldLastName:
		upd.LastName = &text
	case FieldPhone:
		upd.Phone = &text
	case FieldAddress:
		upd.Address = &text
	case FieldDesignation:
		upd.Designation = &text
	case FieldDepartment:
		upd.Department = &text
	case FieldBaseSalary:
		upd.BaseSalary = &text
	case FieldProfilePicture:
		upd.ProfilePicture = &text
	default:
		return &FieldError{Field: key, Reason: "field cannot be updated"}
	}
	return nil
}

func stringValue(key string, value any) (string, error) {
	text, ok := value.(string)
	if !ok {
		return "", &FieldError{Field: key, Reason: "must be a string"}
	}
	return text, nil
}

func stringList(key string, value any) ([]string, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, &FieldError{Field: key, Reason: "must be an array of strings"}
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		text, ok := item.(string)
		if !ok {
			return nil, &FieldError{Field: fmt.Sprintf("%s[%d]", key, i), Reason: "must be a string"}
		}
		if cleaned := sanitize.Text(text); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out, nil
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, value)
}
