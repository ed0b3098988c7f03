package graph

import (
	"strings"
	"testing"

	"github.com/hmans/crudql/internal/config"
)

func TestForVariant(t *testing.T) {
	tests := []struct {
		variant string
		wantOps []string
		wantErr bool
	}{
		{config.VariantHello, []string{"hello"}, false},
		{config.VariantCRUD, []string{
			"hello", "user", "users", "table", "tables",
			"createUser", "updateUser", "deleteUser",
			"createTable", "updateTable", "deleteTable",
		}, false},
		{"", nil, false},
		{"everything", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			d, err := ForVariant(tt.variant)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ForVariant(%q) expected error", tt.variant)
				}
				return
			}
			if err != nil {
				t.Fatalf("ForVariant(%q) error = %v", tt.variant, err)
			}
			if tt.wantOps == nil {
				return
			}
			got := d.Operations()
			if strings.Join(got, ",") != strings.Join(tt.wantOps, ",") {
				t.Errorf("Operations() = %v, want %v", got, tt.wantOps)
			}
		})
	}
}

func TestHelloSDL(t *testing.T) {
	sdl := HelloDeclaration().SDL()

	if strings.Contains(sdl, "mutation") {
		t.Errorf("hello SDL should not declare mutations:\n%s", sdl)
	}
	if !strings.Contains(sdl, "hello: String\n") {
		t.Errorf("hello SDL missing hello field:\n%s", sdl)
	}
}

func TestCRUDSDL(t *testing.T) {
	sdl := CRUDDeclaration().SDL()

	wants := []string{
		"mutation: Mutation",
		"user(id: ID!): User\n",
		"table(id: ID!): Table\n",
		"users: [User!]!\n",
		"createUser(id: ID!, name: String!, age: Int!): User\n",
		"updateUser(id: ID!, name: String, age: Int): User\n",
		"deleteUser(id: ID!): String\n",
		"createTable(id: ID!, name: String!, age: Int!): Table\n",
		"updateTable(id: ID!, name: String, age: Int): Table\n",
		"deleteTable(id: ID!): String\n",
		"type User {",
		"type Table {",
		"age: Int!",
	}
	for _, want := range wants {
		if !strings.Contains(sdl, want) {
			t.Errorf("SDL missing %q", want)
		}
	}
}

func TestValidate(t *testing.T) {
	t.Run("crud", func(t *testing.T) {
		s, err := CRUDDeclaration().Validate()
		if err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if s.Query == nil || s.Query.Fields.ForName("user") == nil {
			t.Error("parsed schema missing Query.user")
		}
		if s.Mutation == nil || s.Mutation.Fields.ForName("deleteTable") == nil {
			t.Error("parsed schema missing Mutation.deleteTable")
		}
	})

	t.Run("hello", func(t *testing.T) {
		s, err := HelloDeclaration().Validate()
		if err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if s.Mutation != nil {
			t.Error("hello schema should have no mutation type")
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		d := &Declaration{Query: []Field{{Name: "widget", Type: "Widget"}}}
		if _, err := d.Validate(); err == nil {
			t.Error("Validate() expected error for undefined type")
		}
	})

	t.Run("no query fields", func(t *testing.T) {
		if _, err := (&Declaration{}).Validate(); err == nil {
			t.Error("Validate() expected error for empty declaration")
		}
	})
}

func TestFormatSchema(t *testing.T) {
	s, err := CRUDDeclaration().Validate()
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	out := FormatSchema(s)
	if !strings.Contains(out, "type User") {
		t.Errorf("formatted schema missing User type:\n%s", out)
	}
	if !strings.Contains(out, "createUser") {
		t.Errorf("formatted schema missing createUser:\n%s", out)
	}
}
