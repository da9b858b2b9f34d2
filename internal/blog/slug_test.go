package blog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Diş Beyazlatma Yöntemleri":   "dis-beyazlatma-yontemleri",
		"İmplant Tedavisi: 5 Soru":    "implant-tedavisi-5-soru",
		"  Gülüş   Tasarımı  ":        "gulus-tasarimi",
		"What is a Root Canal?":       "what-is-a-root-canal",
		"!!!":                         "post",
		"Çocuklarda Ağız Sağlığı 101": "cocuklarda-agiz-sagligi-101",
	}

	for title, want := range cases {
		assert.Equal(t, want, Slugify(title), "title %q", title)
	}
}

type slugCountRepo struct {
	Repository
	counts map[string]int64
	saved  *BlogPost
}

func (r *slugCountRepo) CountSlugPrefix(_ context.Context, slug string) (int64, error) {
	return r.counts[slug], nil
}

func (r *slugCountRepo) Create(_ context.Context, post *BlogPost) error {
	post.ID = 1
	r.saved = post
	return nil
}

func (r *slugCountRepo) GetByID(_ context.Context, _ uint) (*BlogPost, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestCreateGeneratesUniqueSlug(t *testing.T) {
	repo := &slugCountRepo{counts: map[string]int64{"implant-tedavisi": 2}}
	svc := NewService(repo, nil)

	post, err := svc.Create(context.Background(), CreateRequest{
		Title:   "İmplant Tedavisi",
		Content: "...",
	}, "", "")
	require.NoError(t, err)
	assert.Equal(t, "implant-tedavisi-3", post.Slug)
}

func TestCreateValidatesCategoryAndFields(t *testing.T) {
	repo := &slugCountRepo{counts: map[string]int64{}}
	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), CreateRequest{
		Title:    " ",
		Content:  "",
		Category: "gossip",
	}, "", "")

	var violations ValidationErrors
	require.ErrorAs(t, err, &violations)
	assert.Len(t, violations, 3)
}
