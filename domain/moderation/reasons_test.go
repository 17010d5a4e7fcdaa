package moderation

import (
	"errors"
	"testing"

	"modboard/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReasonForm_RequiresAReason(t *testing.T) {
	form := NewReasonForm()
	err := form.Validate()
	assert.True(t, errors.Is(err, core.ErrInvalidReasonForm))
	assert.Equal(t, FormCollecting, form.State())
}

func TestReasonForm_OtherNeedsText(t *testing.T) {
	form := NewReasonForm()
	require.NoError(t, form.Toggle(ReasonOther, true))
	require.NoError(t, form.SetCustom("   "))
	assert.True(t, errors.Is(form.Validate(), core.ErrInvalidReasonForm))

	require.NoError(t, form.SetCustom("Дубликат"))
	require.NoError(t, form.Validate())
	assert.Equal(t, FormValidated, form.State())
}

func TestReasonForm_SubmitJoinsReasons(t *testing.T) {
	form := NewReasonForm()
	require.NoError(t, form.Toggle(ReasonPhotos, true))
	require.NoError(t, form.Toggle(ReasonOther, true))
	require.NoError(t, form.Toggle(ReasonFraud, true))
	require.NoError(t, form.SetCustom("  Дубликат объявления "))
	require.NoError(t, form.SetComment("см. фото 3"))
	require.NoError(t, form.Validate())

	decision, err := form.Submit()
	require.NoError(t, err)
	assert.Equal(t, "Проблемы с фото, Подозрение на мошенничество, Дубликат объявления", decision.Reason)
	assert.Equal(t, "см. фото 3", decision.Comment)
	assert.Equal(t, FormSubmitted, form.State())

	_, err = form.Submit()
	assert.True(t, errors.Is(err, core.ErrFormState))
	assert.True(t, errors.Is(form.Toggle(ReasonPhotos, false), core.ErrFormState))
}

func TestReasonForm_CustomIgnoredWithoutOther(t *testing.T) {
	form := NewReasonForm()
	require.NoError(t, form.Toggle(ReasonCategory, true))
	require.NoError(t, form.SetCustom("лишний текст"))
	require.NoError(t, form.Validate())

	decision, err := form.Submit()
	require.NoError(t, err)
	assert.Equal(t, "Неверная категория", decision.Reason)
}

func TestReasonForm_EditAfterValidateReturnsToCollecting(t *testing.T) {
	form := NewReasonForm()
	require.NoError(t, form.Toggle(ReasonCategory, true))
	require.NoError(t, form.Validate())

	require.NoError(t, form.Toggle(ReasonCategory, false))
	assert.Equal(t, FormCollecting, form.State())

	_, err := form.Submit()
	assert.True(t, errors.Is(err, core.ErrFormState))
	assert.Empty(t, form.Selected())
}

func TestReasonForm_ToggleIsIdempotentAndRejectsUnknown(t *testing.T) {
	form := NewReasonForm()
	require.NoError(t, form.Toggle(ReasonPhotos, true))
	require.NoError(t, form.Toggle(ReasonPhotos, true))
	assert.Equal(t, []Reason{ReasonPhotos}, form.Selected())

	assert.True(t, core.IsValidationError(form.Toggle(Reason("Спам"), true)))
}

func TestReasonForm_Reset(t *testing.T) {
	form := NewReasonForm()
	require.NoError(t, form.Toggle(ReasonPhotos, true))
	require.NoError(t, form.Validate())
	_, err := form.Submit()
	require.NoError(t, err)

	form.Reset()
	assert.Equal(t, FormCollecting, form.State())
	assert.Empty(t, form.Selected())
}

func TestDecisionFromInput(t *testing.T) {
	decision, err := DecisionFromInput(FormInput{
		Reasons: []Reason{ReasonProhibited},
		Comment: "оружие",
	})
	require.NoError(t, err)
	assert.Equal(t, Decision{Reason: "Запрещенный товар", Comment: "оружие"}, decision)

	_, err = DecisionFromInput(FormInput{Reasons: []Reason{ReasonOther}})
	assert.True(t, errors.Is(err, core.ErrInvalidReasonForm))
}
