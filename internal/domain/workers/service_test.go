package workers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Virgo-SSS/Ternakku/internal/adapters/storage/memory"
	"github.com/Virgo-SSS/Ternakku/internal/platform/apperr"
)

type countingRepo struct {
	*memory.Table[Worker]
	creates int
}

func (r *countingRepo) Create(ctx context.Context, w Worker) (string, error) {
	r.creates++
	return r.Table.Create(ctx, w)
}

func newTestService() (*Service, *countingRepo) {
	repo := &countingRepo{Table: memory.NewTable(Codec)}
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return svc, repo
}

func TestCreate_NormalizesAndPersists(t *testing.T) {
	svc, repo := newTestService()

	w, err := svc.Create(context.Background(), CreateInput{
		Name:        " Komang Wiguna ",
		Gender:      GenderMale,
		PhoneNumber: "081234567890",
		Email:       "Komang@Example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Komang Wiguna", w.Name)
	assert.Equal(t, "komang@example.com", w.Email)
	assert.Equal(t, 1, repo.creates)

	got, err := svc.GetByID(context.Background(), w.ID)
	require.NoError(t, err)
	assert.Equal(t, w.PhoneNumber, got.PhoneNumber)
	assert.Equal(t, "Laki-Laki", got.Gender.Label())
}

func TestCreate_MissingEmailNeverReachesRepo(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Create(context.Background(), CreateInput{
		Name:        "Ayu",
		Gender:      GenderFemale,
		PhoneNumber: "0812",
	})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "email is required", ve.Fields["email"])
	assert.Zero(t, repo.creates)
}

func TestCreate_RejectsNonDigitPhone(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateInput{
		Name:        "Ayu",
		Gender:      GenderFemale,
		PhoneNumber: "+62-812",
		Email:       "ayu@example.com",
	})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "phone_number")
}

func TestList_FilterByGender(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for i, g := range []Gender{GenderMale, GenderFemale, GenderFemale} {
		_, err := svc.Create(ctx, CreateInput{
			Name:        []string{"Made", "Ayu", "Sari"}[i],
			Gender:      g,
			PhoneNumber: "0812",
			Email:       "w@example.com",
		})
		require.NoError(t, err)
	}

	items, err := svc.List(ctx, map[string]string{"gender": "F"})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = svc.List(ctx, map[string]string{})
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestUpdate_Email(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	w, err := svc.Create(ctx, CreateInput{Name: "Made", Gender: GenderMale, PhoneNumber: "0812", Email: "made@example.com"})
	require.NoError(t, err)

	bad := "not-an-email"
	_, err = svc.Update(ctx, w.ID, UpdateInput{Email: &bad})
	assert.True(t, apperr.IsValidation(err))

	good := "made@farm.id"
	got, err := svc.Update(ctx, w.ID, UpdateInput{Email: &good})
	require.NoError(t, err)
	assert.Equal(t, "made@farm.id", got.Email)
	assert.Equal(t, "Made", got.Name)
}

func TestDelete_Missing(t *testing.T) {
	svc, _ := newTestService()
	assert.True(t, apperr.IsNotFound(svc.Delete(context.Background(), "nope")))
}
