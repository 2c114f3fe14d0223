package validation

import (
	"strings"
	"testing"

	"flux-backend/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() models.ApplicationInput {
	return models.ApplicationInput{
		Name:       "Asha Verma",
		Branch:     "Computer Science Engineering",
		Year:       "2nd Year",
		Phone:      "+91 (987) 654-3210",
		Email:      "asha@example.com",
		WhyJoin:    "I want to build things with people who care about engineering.",
		SoftSkills: models.SingleSkills("Leadership, Teamwork"),
		HardSkills: models.SkillSequence("Go", "React"),
	}
}

func messages(t *testing.T, err error) []string {
	t.Helper()
	require.Error(t, err)
	verrs, ok := err.(*Errors)
	require.True(t, ok, "expected *Errors, got %T", err)
	return verrs.Messages
}

func TestValidInputPasses(t *testing.T) {
	in := validInput()
	assert.NoError(t, New().Struct(&in))
}

func TestMissingFieldsAreAllReported(t *testing.T) {
	err := New().Struct(&models.ApplicationInput{})
	msgs := messages(t, err)

	for _, field := range []string{"name", "branch", "year", "phone", "email", "whyJoin"} {
		assert.Contains(t, msgs, `"`+field+`" is required`)
	}
	assert.Len(t, msgs, 6)
}

func TestLengthLimits(t *testing.T) {
	in := validInput()
	in.Name = strings.Repeat("n", 201)
	in.Branch = strings.Repeat("b", 200)
	in.Year = strings.Repeat("y", 21)
	in.WhyJoin = strings.Repeat("w", 2001)

	msgs := messages(t, New().Struct(&in))
	assert.ElementsMatch(t, []string{
		`"name" length must be less than or equal to 200 characters long`,
		`"year" length must be less than or equal to 20 characters long`,
		`"whyJoin" length must be less than or equal to 2000 characters long`,
	}, msgs)
}

func TestLengthCountsCharactersNotBytes(t *testing.T) {
	in := validInput()
	in.Name = strings.Repeat("ศ", 200)
	assert.NoError(t, New().Struct(&in))
}

func TestPhonePattern(t *testing.T) {
	good := []string{"123456", "+1 (555) 010-9999", "98765 43210"}
	bad := []string{"12345", "phone-number", "123456789012345678901", "12#456"}

	v := New()
	for _, p := range good {
		in := validInput()
		in.Phone = p
		assert.NoError(t, v.Struct(&in), p)
	}
	for _, p := range bad {
		in := validInput()
		in.Phone = p
		msgs := messages(t, v.Struct(&in))
		require.Len(t, msgs, 1, p)
		assert.Contains(t, msgs[0], `"phone" with value`)
		assert.Contains(t, msgs[0], "fails to match the required pattern")
	}
}

func TestEmailSyntax(t *testing.T) {
	in := validInput()
	in.Email = "not-an-email"
	assert.Equal(t, []string{`"email" must be a valid email`}, messages(t, New().Struct(&in)))
}

func TestInvalidSkillsShape(t *testing.T) {
	in := validInput()
	in.SoftSkills = models.SkillsInput{Kind: models.SkillsInvalid, BadIndex: -1}
	in.HardSkills = models.SkillsInput{Kind: models.SkillsInvalid, BadIndex: 1}
	in.Name = ""

	msgs := messages(t, New().Struct(&in))
	assert.ElementsMatch(t, []string{
		`"name" is required`,
		`"softSkills" must be one of [array, string]`,
		`"hardSkills[1]" must be a string`,
	}, msgs)
}

func TestEmptySkillElement(t *testing.T) {
	in := validInput()
	in.SoftSkills = models.SkillsInput{Kind: models.SkillsInvalid, BadIndex: 1, EmptyElement: true}

	msgs := messages(t, New().Struct(&in))
	assert.Equal(t, []string{`"softSkills[1]" is not allowed to be empty`}, msgs)
}

func TestAbsentSkillsAreValid(t *testing.T) {
	in := validInput()
	in.SoftSkills = models.SkillsInput{}
	in.HardSkills = models.SkillsInput{}
	assert.NoError(t, New().Struct(&in))
}

func TestLoginRequestRules(t *testing.T) {
	msgs := messages(t, New().Struct(&models.LoginRequest{Email: "nope"}))
	assert.ElementsMatch(t, []string{`"email" must be a valid email`, `"password" is required`}, msgs)
}
