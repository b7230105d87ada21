package services

import (
	"context"
	"testing"

	apierrors "myapp/errors"
	"myapp/models"
	"myapp/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_CreateComment(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostService(db)
	svc := NewCommentService(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post := newPost(t, posts, alice.ID, "p")

	comment, err := svc.CreateComment(ctx, bob.ID, &models.CommentRequest{Content: strPtr("nice"), Post: uintPtr(post.ID)})
	require.NoError(t, err)
	assert.Equal(t, bob.ID, comment.AuthorID)
	assert.Equal(t, "bob", comment.Author.Username)
	assert.Equal(t, post.ID, comment.PostID)

	_, err = svc.CreateComment(ctx, Anonymous, &models.CommentRequest{Content: strPtr("x"), Post: uintPtr(post.ID)})
	assert.Equal(t, apierrors.ErrUnauthenticated, err)
}

func TestCommentService_CreateComment_Validation(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostService(db)
	svc := NewCommentService(db)
	alice := createUser(t, db, "alice")
	post := newPost(t, posts, alice.ID, "p")

	tests := []struct {
		name    string
		req     models.CommentRequest
		field   string
		message string
	}{
		{"missing content", models.CommentRequest{Post: uintPtr(post.ID)}, "content", "This field is required."},
		{"blank content", models.CommentRequest{Content: strPtr(" "), Post: uintPtr(post.ID)}, "content", "This field may not be blank."},
		{"missing post", models.CommentRequest{Content: strPtr("x")}, "post", "This field is required."},
		{"unknown post", models.CommentRequest{Content: strPtr("x"), Post: uintPtr(42)}, "post", `Invalid pk "42" - object does not exist.`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateComment(context.Background(), alice.ID, &tt.req)

			var apiErr *apierrors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, 400, apiErr.Status)
			details, ok := apiErr.Details.(map[string][]string)
			require.True(t, ok)
			assert.Equal(t, []string{tt.message}, details[tt.field])
		})
	}
}

func TestCommentService_UpdateAndDelete_Ownership(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostService(db)
	svc := NewCommentService(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post := newPost(t, posts, alice.ID, "p")

	comment, err := svc.CreateComment(ctx, bob.ID, &models.CommentRequest{Content: strPtr("draft"), Post: uintPtr(post.ID)})
	require.NoError(t, err)

	// The post author does not own comments on the post.
	_, err = svc.UpdateComment(ctx, alice.ID, comment.ID, &models.CommentRequest{Content: strPtr("edited")}, true)
	assert.Equal(t, apierrors.ErrForbidden, err)
	assert.Equal(t, apierrors.ErrForbidden, svc.DeleteComment(ctx, alice.ID, comment.ID))
	assert.Equal(t, apierrors.ErrUnauthenticated, svc.DeleteComment(ctx, Anonymous, comment.ID))
	assert.Equal(t, apierrors.ErrNotFound, svc.DeleteComment(ctx, bob.ID, 9999))

	updated, err := svc.UpdateComment(ctx, bob.ID, comment.ID, &models.CommentRequest{Content: strPtr("edited")}, true)
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	assert.Equal(t, post.ID, updated.PostID)

	// PUT needs both fields.
	_, err = svc.UpdateComment(ctx, bob.ID, comment.ID, &models.CommentRequest{Content: strPtr("again")}, false)
	assert.True(t, apierrors.Is(err, apierrors.ErrCodeInvalidInput))

	require.NoError(t, svc.DeleteComment(ctx, bob.ID, comment.ID))
	_, err = svc.GetCommentByID(ctx, comment.ID)
	assert.Equal(t, apierrors.ErrNotFound, err)
}

func TestCommentService_GetComments(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostService(db)
	svc := NewCommentService(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	first := newPost(t, posts, alice.ID, "first")
	second := newPost(t, posts, alice.ID, "second")

	for i, p := range []*models.Post{first, second, first} {
		body := []string{"a", "b", "c"}[i]
		_, err := svc.CreateComment(ctx, alice.ID, &models.CommentRequest{Content: strPtr(body), Post: uintPtr(p.ID)})
		require.NoError(t, err)
	}

	all, err := svc.GetComments(ctx, utils.Page{Number: 1, Size: 10}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Count)
	require.Len(t, all.Items, 3)
	assert.Equal(t, "c", all.Items[0].Content)
	assert.Equal(t, "a", all.Items[2].Content)

	filtered, err := svc.GetComments(ctx, utils.Page{Number: 1, Size: 10}, uintPtr(first.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(2), filtered.Count)
	for _, c := range filtered.Items {
		assert.Equal(t, first.ID, c.PostID)
	}

	empty, err := svc.GetComments(ctx, utils.Page{Number: 1, Size: 10}, uintPtr(9999))
	require.NoError(t, err)
	assert.Zero(t, empty.Count)
	assert.Empty(t, empty.Items)
}
