// Package messages renders domain errors as user-facing text. Field names
// and templates are localized; the defaults are Brazilian Portuguese and a
// YAML file can override any subset of them.
package messages

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ErlanBelekov/clean-auth/internal/domain"
	"gopkg.in/yaml.v3"
)

// Field keys used by the controllers.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldPermissions = "permissions"
	FieldRole        = "role"
)

// Catalog templates may use {field} and {min}.
type Catalog struct {
	Fields             map[string]string `yaml:"fields"`
	RequiredField      string            `yaml:"required_field"`
	MinLength          string            `yaml:"min_length"`
	BadEmailFormat     string            `yaml:"bad_email_format"`
	EmailInUse         string            `yaml:"email_in_use"`
	EmailNotFound      string            `yaml:"email_not_found"`
	AccessDenied       string            `yaml:"access_denied"`
	Unauthorized       string            `yaml:"unauthorized"`
	InvalidCredentials string            `yaml:"invalid_credentials"`
	RoleNotFound       string            `yaml:"role_not_found"`
	RoleExists         string            `yaml:"role_exists"`
	UnknownPermission  string            `yaml:"unknown_permission"`
	InvalidPayload     string            `yaml:"invalid_payload"`
}

func Default() *Catalog {
	return &Catalog{
		Fields: map[string]string{
			FieldName:        "nome",
			FieldEmail:       "e-mail",
			FieldPassword:    "senha",
			FieldPermissions: "permissões",
			FieldRole:        "cargo",
		},
		RequiredField:      "O campo {field} é obrigatório",
		MinLength:          "O campo {field} deve conter no mínimo {min} caracteres",
		BadEmailFormat:     "E-mail mal formatado",
		EmailInUse:         "Este e-mail já está sendo utilizado",
		EmailNotFound:      "E-mail não encontrado",
		AccessDenied:       "Acesso negado",
		Unauthorized:       "Não autorizado",
		InvalidCredentials: "E-mail e/ou senha inválidos",
		RoleNotFound:       "Cargo não encontrado",
		RoleExists:         "Já existe um(a) cargo com este(a) nome",
		UnknownPermission:  "Permissão inválida",
		InvalidPayload:     "Corpo da requisição inválido",
	}
}

// Load reads a YAML catalog from path and lays it over Default, so the file
// only needs the entries it changes.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read messages file: %w", err)
	}

	var override Catalog
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return nil, fmt.Errorf("parse messages file: %w", err)
	}

	c := Default()
	for k, v := range override.Fields {
		c.Fields[k] = v
	}
	merge(&c.RequiredField, override.RequiredField)
	merge(&c.MinLength, override.MinLength)
	merge(&c.BadEmailFormat, override.BadEmailFormat)
	merge(&c.EmailInUse, override.EmailInUse)
	merge(&c.EmailNotFound, override.EmailNotFound)
	merge(&c.AccessDenied, override.AccessDenied)
	merge(&c.Unauthorized, override.Unauthorized)
	merge(&c.InvalidCredentials, override.InvalidCredentials)
	merge(&c.RoleNotFound, override.RoleNotFound)
	merge(&c.RoleExists, override.RoleExists)
	merge(&c.UnknownPermission, override.UnknownPermission)
	merge(&c.InvalidPayload, override.InvalidPayload)
	return c, nil
}

func merge(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// Field returns the localized name for key, or key itself if unmapped.
func (c *Catalog) Field(key string) string {
	if name, ok := c.Fields[key]; ok {
		return name
	}
	return key
}

// Message renders err for the client. Errors outside the domain vocabulary
// fall back to err.Error().
func (c *Catalog) Message(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return c.validation(ve)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.InvalidCredentials
	case errors.Is(err, domain.ErrRoleNotFound):
		return c.RoleNotFound
	case errors.Is(err, domain.ErrRoleExists):
		return c.RoleExists
	case errors.Is(err, domain.ErrUnknownPermission):
		return c.UnknownPermission
	}
	return err.Error()
}

func (c *Catalog) validation(ve *domain.ValidationError) string {
	var tmpl string
	switch ve.Kind {
	case domain.KindRequiredField:
		tmpl = c.RequiredField
	case domain.KindMinLength:
		tmpl = c.MinLength
	case domain.KindBadEmailFormat:
		tmpl = c.BadEmailFormat
	case domain.KindEmailInUse:
		tmpl = c.EmailInUse
	case domain.KindEmailNotFound:
		tmpl = c.EmailNotFound
	case domain.KindAccessDenied:
		tmpl = c.AccessDenied
	case domain.KindUnauthorized:
		tmpl = c.Unauthorized
	default:
		return ve.Error()
	}
	return strings.NewReplacer("{field}", ve.Field, "{min}", strconv.Itoa(ve.Min)).Replace(tmpl)
}
