package usecases

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PavaniTiago/cck-survey-api/internal/domain/entities"
	"github.com/PavaniTiago/cck-survey-api/internal/infrastructure/export"
)

var fixedNow = time.Date(2024, 10, 1, 9, 30, 15, 0, time.UTC)

func newFlow(t *testing.T, cfg FlowConfig, conn *fakeConnector) (*FlowUseCase, *PersistUseCase) {
	t.Helper()
	persist := NewPersistUseCase(conn, nil, time.UTC, nil).WithClock(func() time.Time { return fixedNow })
	flow := NewFlowUseCase(cfg, conn, persist, nil).
		WithRand(rand.New(rand.NewPCG(1, 2))).
		WithIDGenerator(sequenceIDs("resp000")).
		WithClock(func() time.Time { return fixedNow })
	return flow, persist
}

func answerInput(pick int) map[string]string {
	input := map[string]string{}
	for _, f := range entities.AnswerFields {
		input[f.Key] = f.Options[pick%len(f.Options)]
	}
	return input
}

// completeEvaluations leva a sessão da introdução até a página demográfica
func completeEvaluations(t *testing.T, flow *FlowUseCase, s *entities.Session) {
	t.Helper()
	require.NoError(t, flow.Consent(s, "ACME", entities.ConsentAccept))
	require.NoError(t, flow.Start(s))
	for i := 0; i < s.TotalEvents; i++ {
		require.Equal(t, entities.PageEvaluation, s.Page)
		require.NoError(t, flow.SubmitEvaluation(s, answerInput(i)))
	}
	require.Equal(t, entities.PageDemographics, s.Page)
}

var demographics = DemographicsInput{JobLevel: "Gerente", StartDate: "15/08/2018", Department: "Tecnología/IT"}

func TestNewSessionVerifiesCredentials(t *testing.T) {
	flow, _ := newFlow(t, FlowConfig{TotalEvents: 3}, &fakeConnector{ws: newMemWorksheet()})
	s := flow.NewSession(context.Background(), "sess-1")
	assert.Equal(t, entities.PageIntro, s.Page)
	assert.True(t, s.CredentialsVerified)
	assert.False(t, s.CredentialsError)
	assert.NotEmpty(t, s.ResponseID)

	flow, _ = newFlow(t, FlowConfig{TotalEvents: 3}, &fakeConnector{err: errors.New("no creds")})
	s = flow.NewSession(context.Background(), "sess-2")
	assert.False(t, s.CredentialsVerified)
	assert.True(t, s.CredentialsError)
	assert.Equal(t, "no creds", s.CredentialsMessage)

	flow, _ = newFlow(t, FlowConfig{TotalEvents: 3}, &fakeConnector{})
	s = flow.NewSession(context.Background(), "sess-3")
	assert.False(t, s.CredentialsVerified)
	assert.True(t, s.CredentialsError)
}

func TestConsentDeclinedHaltsFlow(t *testing.T) {
	conn := &fakeConnector{ws: newMemWorksheet()}
	flow, _ := newFlow(t, FlowConfig{TotalEvents: 3}, conn)
	s := flow.NewSession(context.Background(), "sess")
	before := s.ResponseID

	err := flow.Consent(s, "ACME", entities.ConsentDecline)
	assert.ErrorIs(t, err, ErrConsentDeclined)
	assert.Equal(t, entities.PageIntro, s.Page)
	assert.Equal(t, before, s.ResponseID)
	assert.Empty(t, s.ClientName)
	assert.Empty(t, conn.ws.dataRows())

	assert.ErrorIs(t, flow.Start(s), ErrWrongPage)
	assert.ErrorIs(t, flow.Consent(s, "ACME", ""), ErrInvalidConsent)
}

func TestConsentRegeneratesResponseID(t *testing.T) {
	flow, _ := newFlow(t, FlowConfig{TotalEvents: 3}, &fakeConnector{ws: newMemWorksheet()})
	s := flow.NewSession(context.Background(), "sess")
	before := s.ResponseID

	require.NoError(t, flow.Consent(s, "ACME", entities.ConsentAccept))
	assert.Equal(t, entities.PageInstructions, s.Page)
	assert.NotEqual(t, before, s.ResponseID)
	assert.Equal(t, "ACME", s.ClientName)
}

func TestWrongPageActions(t *testing.T) {
	flow, _ := newFlow(t, FlowConfig{TotalEvents: 3}, &fakeConnector{ws: newMemWorksheet()})
	s := flow.NewSession(context.Background(), "sess")

	assert.ErrorIs(t, flow.SubmitEvaluation(s, answerInput(0)), ErrWrongPage)
	_, err := flow.SubmitDemographics(context.Background(), s, demographics)
	assert.ErrorIs(t, err, ErrWrongPage)
	_, err = flow.Save(context.Background(), s)
	assert.ErrorIs(t, err, ErrWrongPage)
	assert.ErrorIs(t, flow.Reset(s), ErrWrongPage)
}

func TestSamplingWithoutReplacement(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("selected events are distinct catalog members of fixed cardinality", prop.ForAll(
		func(total int, seed uint64) bool {
			flow := NewFlowUseCase(FlowConfig{TotalEvents: total}, nil, nil, nil).
				WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
			s := flow.NewSession(context.Background(), "sess")
			if flow.Consent(s, "", entities.ConsentAccept) != nil || flow.Start(s) != nil {
				return false
			}
			if len(s.SelectedEvents) != total {
				return false
			}
			seen := map[entities.Event]bool{}
			for _, e := range s.SelectedEvents {
				if seen[e] || !entities.IsCatalogEvent(e) {
					return false
				}
				seen[e] = true
			}
			return true
		},
		gen.IntRange(1, len(entities.CriticalEvents)),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

func TestEvaluationAnswersStayInDomain(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("each selected event gets one complete answer", prop.ForAll(
		func(picks []int, dropped int) bool {
			flow := NewFlowUseCase(FlowConfig{TotalEvents: 3}, nil, nil, nil)
			s := flow.NewSession(context.Background(), "sess")
			_ = flow.Consent(s, "", entities.ConsentAccept)
			_ = flow.Start(s)

			for i := 0; i < 3; i++ {
				input := answerInput(picks[i])
				// um campo omitido recebe a primeira opção
				delete(input, entities.AnswerFields[dropped].Key)
				if err := flow.SubmitEvaluation(s, input); err != nil {
					return false
				}
			}

			answers := s.Answers()
			if len(answers) != 3 || s.AnsweredCount != 3 || s.Page != entities.PageDemographics {
				return false
			}
			for i, a := range answers {
				if a.Event != s.SelectedEvents[i] || !a.Answer.Complete() {
					return false
				}
				if a.Answer.Values()[dropped] != entities.AnswerFields[dropped].Options[0] {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(3, gen.IntRange(0, 4)),
		gen.IntRange(0, len(entities.AnswerFields)-1),
	))

	properties.TestingRun(t)
}

func TestStrictAnswersRejectMissingFields(t *testing.T) {
	flow, _ := newFlow(t, FlowConfig{TotalEvents: 1, StrictAnswers: true}, &fakeConnector{ws: newMemWorksheet()})
	s := flow.NewSession(context.Background(), "sess")
	require.NoError(t, flow.Consent(s, "ACME", entities.ConsentAccept))
	require.NoError(t, flow.Start(s))

	input := answerInput(0)
	delete(input, "impacto")
	assert.ErrorIs(t, flow.SubmitEvaluation(s, input), entities.ErrMissingAnswer)
	assert.Zero(t, s.AnsweredCount)

	require.NoError(t, flow.SubmitEvaluation(s, answerInput(0)))
	_, err := flow.SubmitDemographics(context.Background(), s, DemographicsInput{JobLevel: "Gerente", Department: "Finanzas"})
	assert.ErrorIs(t, err, entities.ErrInvalidDemographics)
	assert.Equal(t, entities.PageDemographics, s.Page)
}

func TestCompleteSurveySavesRemotely(t *testing.T) {
	conn := &fakeConnector{ws: newMemWorksheet()}
	flow, _ := newFlow(t, FlowConfig{TotalEvents: 3}, conn)
	s := flow.NewSession(context.Background(), "sess")
	completeEvaluations(t, flow, s)

	result, err := flow.SubmitDemographics(context.Background(), s, demographics)
	require.NoError(t, err)
	assert.True(t, result.Succeeded)
	assert.Equal(t, 3, result.RowsWritten)
	assert.Nil(t, result.Export)
	assert.Nil(t, s.LastExport)
	assert.True(t, s.Saved)
	assert.Equal(t, entities.PageSave, s.Page)

	rows := conn.ws.dataRows()
	require.Len(t, rows, 3)
	for i, row := range rows {
		assert.Equal(t, s.ResponseID, row[0])
		assert.Equal(t, "ACME", row[1])
		assert.Equal(t, "01/10/2024 09:30:15", row[2])
		assert.Equal(t, "15/08/2018", row[4])
		assert.Equal(t, string(s.SelectedEvents[i]), row[6])
	}
}

func TestConnectorNullOffersFullCSV(t *testing.T) {
	conn := &fakeConnector{ws: newMemWorksheet()}
	flow, _ := newFlow(t, FlowConfig{TotalEvents: 3}, conn)
	s := flow.NewSession(context.Background(), "sess")
	completeEvaluations(t, flow, s)

	// a conexão cai entre a verificação e o salvamento
	conn.ws = nil

	result, err := flow.SubmitDemographics(context.Background(), s, demographics)
	require.NoError(t, err)
	assert.False(t, result.Succeeded)
	assert.False(t, s.Saved)
	assert.Equal(t, FailureConnection, result.Failure)
	assert.True(t, s.CredentialsError)
	require.NotNil(t, s.LastExport)
	assert.Equal(t, "encuesta_cck_respuestas_20241001_093015.csv", s.LastExport.FileName)

	rows, err := export.ReadCSV(bytes.NewReader(s.LastExport.Data))
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestResetAfterSave(t *testing.T) {
	conn := &fakeConnector{ws: newMemWorksheet()}
	flow, _ := newFlow(t, FlowConfig{TotalEvents: 3}, conn)
	s := flow.NewSession(context.Background(), "sess")
	completeEvaluations(t, flow, s)
	_, err := flow.SubmitDemographics(context.Background(), s, demographics)
	require.NoError(t, err)

	before := s.ResponseID
	require.NoError(t, flow.Reset(s))

	assert.Equal(t, entities.PageIntro, s.Page)
	assert.NotEqual(t, before, s.ResponseID)
	assert.Empty(t, s.Answers())
	assert.Empty(t, s.SelectedEvents)
	assert.Nil(t, s.Demographics)
	assert.Nil(t, s.LastExport)
	assert.Equal(t, "ACME", s.ClientName)
	assert.True(t, s.CredentialsVerified)
	assert.False(t, s.CredentialsError)

	// a sessão reiniciada pode responder de novo
	completeEvaluations(t, flow, s)
}
