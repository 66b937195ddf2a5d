package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "legatia/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"
//
// Justification: This is a pure function enforcing a domain invariant
// at trust boundaries.
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseUserID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseUserID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseUserID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseUserID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, UserID(validUUID), id)
	})
}

// TestTypeDistinction verifies the compiler enforces type safety.
// This is a compile-time check - if this compiles, the invariant holds.
func TestTypeDistinction(t *testing.T) {
	familyID := NewFamilyID()
	memberID := NewMemberID()

	// These would fail to compile if types were interchangeable:
	// var _ FamilyID = memberID   // compile error
	// var _ MemberID = familyID   // compile error

	assert.NotEqual(t, uuid.UUID(familyID), uuid.UUID(memberID))
}

// TestCrossTypeAssignment_CompileTimeInvariant documents the compile-time invariant.
// If someone removes type safety, this test's comments become incorrect.
//
// Justification: Documents security invariant - typed IDs prevent cross-type assignment.
func TestCrossTypeAssignment_CompileTimeInvariant(t *testing.T) {
	// The following would fail to compile:
	// var cid ClaimID = InvitationID(uuid.New())  // type mismatch
	// var iid InvitationID = ClaimID(uuid.New())  // type mismatch
	// acceptsMemberID(FamilyID(uuid.New()))       // argument type mismatch

	// This test documents the invariant. If types become aliases,
	// these assignments would compile and the invariant is broken.
	t.Log("Typed IDs prevent cross-type assignment at compile time")
}

// TestParseID_SecurityInvariants validates security-critical parsing rules.
//
// Justification: These are trust boundary invariants - parsing must reject
// attack vectors at API entry points.
func TestParseID_SecurityInvariants(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		// Attack vectors
		{"SQL injection attempt", "'; DROP TABLE users;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Unicode zero-width space", "550e8400\u200B-e29b-41d4-a716-446655440000", true},

		// Edge cases
		{"Empty string", "", true},
		{"Nil UUID", uuid.Nil.String(), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},
		// Note: uuid.Parse trims whitespace, so " uuid " is accepted as valid

		// Valid
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUserID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestAllIDTypes_ConsistentBehavior ensures all ID types have identical parsing behavior.
func TestAllIDTypes_ConsistentBehavior(t *testing.T) {
	validUUID := uuid.New().String()
	invalidInputs := []string{"", "invalid", uuid.Nil.String()}

	parsers := map[string]func(string) error{
		"user":         func(s string) error { _, err := ParseUserID(s); return err },
		"family":       func(s string) error { _, err := ParseFamilyID(s); return err },
		"member":       func(s string) error { _, err := ParseMemberID(s); return err },
		"event":        func(s string) error { _, err := ParseEventID(s); return err },
		"claim":        func(s string) error { _, err := ParseClaimID(s); return err },
		"invitation":   func(s string) error { _, err := ParseInvitationID(s); return err },
		"notification": func(s string) error { _, err := ParseNotificationID(s); return err },
	}

	t.Run("all accept valid UUID", func(t *testing.T) {
		for name, parse := range parsers {
			require.NoError(t, parse(validUUID), name)
		}
	})

	for _, input := range invalidInputs {
		t.Run("all reject: "+input, func(t *testing.T) {
			for name, parse := range parsers {
				err := parse(input)
				require.Error(t, err, name)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput), name)
			}
		})
	}
}

func TestIDText_RoundTrip(t *testing.T) {
	t.Run("json round trip keeps the value", func(t *testing.T) {
		in := struct {
			Family FamilyID `json:"family"`
			Claim  ClaimID  `json:"claim"`
		}{Family: NewFamilyID(), Claim: NewClaimID()}

		raw, err := json.Marshal(in)
		require.NoError(t, err)
		assert.Contains(t, string(raw), in.Family.String())

		var out struct {
			Family FamilyID `json:"family"`
			Claim  ClaimID  `json:"claim"`
		}
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.Equal(t, in.Family, out.Family)
		assert.Equal(t, in.Claim, out.Claim)
	})

	t.Run("empty text decodes to nil id", func(t *testing.T) {
		var m MemberID
		require.NoError(t, m.UnmarshalText(nil))
		assert.True(t, m.IsNil())
	})

	t.Run("malformed text is rejected", func(t *testing.T) {
		var u UserID
		err := u.UnmarshalText([]byte("nope"))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}
