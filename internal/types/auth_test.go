package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{"valid", RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "longenough"}, false},
		{"missing name", RegisterRequest{Email: "ada@example.com", Password: "longenough"}, true},
		{"bad email", RegisterRequest{Name: "Ada", Email: "not-an-email", Password: "longenough"}, true},
		{"short password", RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "short"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Email: "ada@example.com", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "ada@example.com"}).Validate())
	assert.Error(t, (&LoginRequest{Password: "x"}).Validate())
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Status("ghosted").Valid())
}

func TestStatusTotals_ApplicationToInterviewRate(t *testing.T) {
	assert.Equal(t, 0.0, StatusTotals{}.ApplicationToInterviewRate())
	assert.Equal(t, 0.5, StatusTotals{Total: 4, Applied: 2, Interview: 1}.ApplicationToInterviewRate())
	// no applications recorded yet: divide by one
	assert.Equal(t, 1.0, StatusTotals{Total: 1, Interview: 1}.ApplicationToInterviewRate())
}

func TestBlocksText(t *testing.T) {
	blocks := []ResumeBlock{{ID: "a", Content: "first"}, {ID: "b", Content: "second"}}
	assert.Equal(t, "first\n\nsecond", BlocksText(blocks, "\n\n"))
	assert.Equal(t, "", BlocksText(nil, "\n"))

	var r *Resume
	assert.Equal(t, "", r.Text("\n"))
}

func TestInterviewQuestionSet_All(t *testing.T) {
	q := InterviewQuestionSet{
		Technical:    []string{"t"},
		Behavioral:   []string{"b1", "b2"},
		SystemDesign: []string{"s"},
	}
	assert.Equal(t, []string{"t", "b1", "b2", "s"}, q.All())
}
