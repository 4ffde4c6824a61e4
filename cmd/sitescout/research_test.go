package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/sitescout/sitescout"
	main "github.com/sitescout/sitescout/cmd/sitescout"
	"github.com/sitescout/sitescout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeps(researcher sitescout.Researcher) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:        context.Background(),
		Stdout:     stdout,
		Stderr:     stderr,
		Researcher: researcher,
	}, stdout, stderr
}

func TestResearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints answer with confidence and section", func(t *testing.T) {
		t.Parallel()

		researcher := &mock.Researcher{
			ResearchFn: func(_ context.Context, req sitescout.Request) sitescout.ResultRecord {
				assert.Equal(t, "acme.com", req.Domain)
				assert.Equal(t, sitescout.FormatBoolean, req.Format)
				return sitescout.ResultRecord{
					Request: req,
					Result: &sitescout.Result{
						Answer:     sitescout.AnswerYes,
						Confidence: sitescout.ConfidenceHigh,
						Evidence:   "SOC 2 Type II certified",
						Found:      true,
					},
					Section: sitescout.SectionSecurity,
				}
			},
		}
		deps, stdout, _ := testDeps(researcher)

		cmd := &main.ResearchCmd{Domain: "acme.com", Query: "Is the company SOC 2 certified?", Format: "boolean"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "Answer:     Yes")
		assert.Contains(t, out, "Confidence: high")
		assert.Contains(t, out, "Evidence:   SOC 2 Type II certified")
		assert.Contains(t, out, "Section:    security")
	})

	t.Run("joins list items", func(t *testing.T) {
		t.Parallel()

		researcher := &mock.Researcher{
			ResearchFn: func(_ context.Context, req sitescout.Request) sitescout.ResultRecord {
				return sitescout.ResultRecord{
					Request: req,
					Result: &sitescout.Result{
						Items:      []string{"Widget A", "Widget B"},
						Confidence: sitescout.ConfidenceMedium,
						Found:      true,
					},
					Section: sitescout.SectionProducts,
				}
			},
		}
		deps, stdout, _ := testDeps(researcher)

		cmd := &main.ResearchCmd{Domain: "acme.com", Query: "What products?", Format: "list"}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "Widget A; Widget B")
	})

	t.Run("json flag prints the full record", func(t *testing.T) {
		t.Parallel()

		researcher := &mock.Researcher{
			ResearchFn: func(_ context.Context, req sitescout.Request) sitescout.ResultRecord {
				return sitescout.ResultRecord{
					Request: req,
					Result:  &sitescout.Result{Answer: "Berlin", Confidence: sitescout.ConfidenceHigh, Found: true},
					Section: sitescout.SectionAbout,
				}
			},
		}
		deps, stdout, _ := testDeps(researcher)

		cmd := &main.ResearchCmd{Domain: "acme.com", Query: "Where is the HQ?", JSON: true}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), `"answer": "Berlin"`)
		assert.Contains(t, stdout.String(), `"section_searched": "about"`)
	})

	t.Run("invalid format rejected before researching", func(t *testing.T) {
		t.Parallel()

		researcher := &mock.Researcher{
			ResearchFn: func(_ context.Context, _ sitescout.Request) sitescout.ResultRecord {
				t.Fatal("researcher should not be called")
				return sitescout.ResultRecord{}
			},
		}
		deps, _, stderr := testDeps(researcher)

		cmd := &main.ResearchCmd{Domain: "acme.com", Query: "q", Format: "xml"}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, sitescout.EINVALID, sitescout.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("pipeline failure is reported", func(t *testing.T) {
		t.Parallel()

		researcher := &mock.Researcher{
			ResearchFn: func(_ context.Context, req sitescout.Request) sitescout.ResultRecord {
				return sitescout.ResultRecord{
					Request: req,
					Err:     sitescout.Errorf(sitescout.EFETCH, "connection refused"),
				}
			},
		}
		deps, _, stderr := testDeps(researcher)

		cmd := &main.ResearchCmd{Domain: "down.example", Query: "q"}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "connection refused")
	})
}
