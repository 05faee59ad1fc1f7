package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/model"
)

func TestSetScalar(t *testing.T) {
	base := model.Default()
	got, err := SetScalar(base, SectionExperience, "jobTitle", "Engineer")
	require.NoError(t, err)

	assert.Equal(t, "Engineer", got.Experience.JobTitle)
	assert.Equal(t, "", base.Experience.JobTitle)
}

func TestSetScalar_Unknown(t *testing.T) {
	base := model.Default()

	_, err := SetScalar(base, "hobbies", "x", "y")
	assert.ErrorIs(t, err, ErrUnknownSection)

	_, err = SetScalar(base, SectionContact, "fax", "y")
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = SetScalar(base, SectionAchievements, "0", "y")
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestSetTopLevelScalar(t *testing.T) {
	got, err := SetTopLevelScalar(model.Default(), SectionSummary, "Builder of things")
	require.NoError(t, err)
	assert.Equal(t, "Builder of things", got.Summary)

	_, err = SetTopLevelScalar(model.Default(), SectionExperience, "x")
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestAppendArrayElement(t *testing.T) {
	base := model.Default()
	base.Achievements = []string{"one", "two", "three"}

	got, err := AppendArrayElement(base, SectionAchievements, "X")
	require.NoError(t, err)

	require.Len(t, got.Achievements, len(base.Achievements)+1)
	assert.Equal(t, append(append([]string{}, base.Achievements...), "X"), got.Achievements)
	assert.Equal(t, []string{"one", "two", "three"}, base.Achievements)
}

func TestSetArrayElement_LastIndex(t *testing.T) {
	base := model.Default()
	base.Interests = []string{"a", "b", "c"}

	got, err := SetArrayElement(base, SectionInterests, len(base.Interests)-1, "z")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "z"}, got.Interests)
	want := base.Clone()
	want.Interests = got.Interests
	assert.True(t, got.Equal(want))
}

func TestSetArrayElement_OutOfRange(t *testing.T) {
	base := model.Default()
	before := base.Clone()

	for _, idx := range []int{-1, len(base.Certifications), len(base.Certifications) + 5} {
		got, err := SetArrayElement(base, SectionCertifications, idx, "x")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrIndexOutOfRange), "index %d: %v", idx, err)
		assert.True(t, got.Equal(before))
		assert.True(t, base.Equal(before))
	}
}

func TestNestedElements(t *testing.T) {
	base := model.Default()

	got, err := SetNestedArrayElement(base, SectionLanguages, "backend", 1, "Go")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "Go"}, got.Languages[model.CategoryBackend])
	assert.Equal(t, []string{"", ""}, base.Languages[model.CategoryBackend])

	got, err = AppendNestedArrayElement(got, SectionLanguages, "backend", "Python")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "Go", "Python"}, got.Languages[model.CategoryBackend])
	assert.Equal(t, base.Languages[model.CategoryFrontend], got.Languages[model.CategoryFrontend])

	_, err = SetNestedArrayElement(base, SectionLanguages, "backend", 2, "x")
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = AppendNestedArrayElement(base, SectionLanguages, "cooking", "x")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	_, err = AppendNestedArrayElement(base, SectionAchievements, "backend", "x")
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestApply(t *testing.T) {
	doc := model.Default()
	ops := []Operation{
		{Op: OpSetScalar, Section: SectionPersonalInformation, Field: "fullName", Value: "Ada"},
		{Op: OpSetTopLevel, Section: SectionSummary, Value: "Analyst"},
		{Op: OpAppendElement, Section: SectionSpokenLanguages, Value: "French"},
		{Op: OpSetElement, Section: SectionSpokenLanguages, Index: 0, Value: "English"},
		{Op: OpAppendNestedElement, Section: SectionLanguages, Subsection: "tools", Value: "git"},
		{Op: OpSetNestedElement, Section: SectionLanguages, Subsection: "tools", Index: 0, Value: "make"},
	}
	for _, op := range ops {
		var err error
		doc, err = Apply(doc, op)
		require.NoError(t, err, "op %+v", op)
	}

	assert.Equal(t, "Ada", doc.PersonalInformation.FullName)
	assert.Equal(t, "Analyst", doc.Summary)
	assert.Equal(t, []string{"English", "", "French"}, doc.SpokenLanguages)
	assert.Equal(t, []string{"make", "", "git"}, doc.Languages[model.CategoryTools])

	doc, err := Apply(doc, Operation{Op: OpReset})
	require.NoError(t, err)
	assert.True(t, doc.Equal(model.Default()))
}

func TestApply_Deterministic(t *testing.T) {
	op := Operation{Op: OpAppendElement, Section: SectionInterests, Value: "x"}
	a, err := Apply(model.Default(), op)
	require.NoError(t, err)
	b, err := Apply(model.Default(), op)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestApply_UnknownOp(t *testing.T) {
	_, err := Apply(model.Default(), Operation{Op: "delete_everything"})
	assert.ErrorIs(t, err, ErrUnknownOperation)
}
