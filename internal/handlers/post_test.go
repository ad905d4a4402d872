package handlers_test

import (
	"net/http"
	"testing"

	"github.com/Gundeep-repos/Developer-Connector/internal/db"
	"github.com/Gundeep-repos/Developer-Connector/internal/models"
)

func TestCreatePost(t *testing.T) {
	r := setupServer(t)
	alice, token := createUser(t, "Alice", "alice@example.com")

	w := doRequest(t, r, http.MethodPost, "/api/posts", token, map[string]string{"text": "hello"})
	wantStatus(t, w, http.StatusOK)

	var post models.Post
	decodeBody(t, w, &post)

	if post.ID == 0 {
		t.Error("expected a generated post id")
	}
	if post.Text != "hello" {
		t.Errorf("text = %q, want %q", post.Text, "hello")
	}
	if post.Name != "Alice" {
		t.Errorf("name = %q, want %q", post.Name, "Alice")
	}
	if post.UserID != alice.ID {
		t.Errorf("user = %d, want %d", post.UserID, alice.ID)
	}
	if post.Avatar != alice.Avatar {
		t.Errorf("avatar = %q, want snapshot %q", post.Avatar, alice.Avatar)
	}
	if post.CreatedAt.IsZero() {
		t.Error("expected a creation timestamp")
	}
	if post.Likes == nil || len(post.Likes) != 0 {
		t.Errorf("likes = %v, want empty list", post.Likes)
	}
	if post.Comments == nil || len(post.Comments) != 0 {
		t.Errorf("comments = %v, want empty list", post.Comments)
	}
}

func TestCreatePostRequiresText(t *testing.T) {
	r := setupServer(t)
	_, token := createUser(t, "Alice", "alice@example.com")

	w := doRequest(t, r, http.MethodPost, "/api/posts", token, map[string]string{"text": "  "})
	wantStatus(t, w, http.StatusBadRequest)

	var body struct {
		Errors []struct {
			Param string `json:"param"`
			Msg   string `json:"msg"`
		} `json:"errors"`
	}
	decodeBody(t, w, &body)
	if len(body.Errors) != 1 || body.Errors[0].Param != "text" {
		t.Errorf("errors = %+v, want one entry for text", body.Errors)
	}
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	r := setupServer(t)

	w := doRequest(t, r, http.MethodGet, "/api/posts", "", nil)
	wantStatus(t, w, http.StatusUnauthorized)

	w = doRequest(t, r, http.MethodGet, "/api/posts", "not-a-token", nil)
	wantStatus(t, w, http.StatusUnauthorized)

	// No post was created by the rejected requests
	var count int64
	db.DB.Model(&models.Post{}).Count(&count)
	if count != 0 {
		t.Errorf("post count = %d, want 0", count)
	}
}

func TestListPostsNewestFirst(t *testing.T) {
	r := setupServer(t)
	_, token := createUser(t, "Alice", "alice@example.com")

	for _, text := range []string{"first", "second", "third"} {
		w := doRequest(t, r, http.MethodPost, "/api/posts", token, map[string]string{"text": text})
		wantStatus(t, w, http.StatusOK)
	}

	w := doRequest(t, r, http.MethodGet, "/api/posts", token, nil)
	wantStatus(t, w, http.StatusOK)

	var posts []models.Post
	decodeBody(t, w, &posts)
	if len(posts) != 3 {
		t.Fatalf("len(posts) = %d, want 3", len(posts))
	}
	if posts[0].Text != "third" || posts[2].Text != "first" {
		t.Errorf("order = [%s %s %s], want newest first", posts[0].Text, posts[1].Text, posts[2].Text)
	}
}

func TestGetPostNotFound(t *testing.T) {
	r := setupServer(t)
	_, token := createUser(t, "Alice", "alice@example.com")

	w := doRequest(t, r, http.MethodGet, "/api/posts/9999", token, nil)
	wantStatus(t, w, http.StatusNotFound)
}

func TestDeletePostOwnership(t *testing.T) {
	r := setupServer(t)
	_, aliceToken := createUser(t, "Alice", "alice@example.com")
	_, bobToken := createUser(t, "Bob", "bob@example.com")

	w := doRequest(t, r, http.MethodPost, "/api/posts", aliceToken, map[string]string{"text": "mine"})
	wantStatus(t, w, http.StatusOK)
	var post models.Post
	decodeBody(t, w, &post)

	// A non-owner is rejected and the post survives
	w = doRequest(t, r, http.MethodDelete, postPath(post.ID), bobToken, nil)
	wantStatus(t, w, http.StatusForbidden)

	var count int64
	db.DB.Model(&models.Post{}).Where("id = ?", post.ID).Count(&count)
	if count != 1 {
		t.Fatalf("post removed by non-owner")
	}

	// The owner may delete
	w = doRequest(t, r, http.MethodDelete, postPath(post.ID), aliceToken, nil)
	wantStatus(t, w, http.StatusOK)

	w = doRequest(t, r, http.MethodGet, postPath(post.ID), aliceToken, nil)
	wantStatus(t, w, http.StatusNotFound)
}

func TestLikeTwiceConflicts(t *testing.T) {
	r := setupServer(t)
	_, aliceToken := createUser(t, "Alice", "alice@example.com")
	bob, bobToken := createUser(t, "Bob", "bob@example.com")

	w := doRequest(t, r, http.MethodPost, "/api/posts", aliceToken, map[string]string{"text": "like me"})
	wantStatus(t, w, http.StatusOK)
	var post models.Post
	decodeBody(t, w, &post)

	w = doRequest(t, r, http.MethodPut, likePath(post.ID), bobToken, nil)
	wantStatus(t, w, http.StatusOK)
	var likes []models.Like
	decodeBody(t, w, &likes)
	if len(likes) != 1 || likes[0].UserID != bob.ID {
		t.Fatalf("likes = %+v, want one entry for bob", likes)
	}

	// Second like by the same user is a conflict, list unchanged
	w = doRequest(t, r, http.MethodPut, likePath(post.ID), bobToken, nil)
	wantStatus(t, w, http.StatusBadRequest)

	var count int64
	db.DB.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", post.ID, bob.ID).Count(&count)
	if count != 1 {
		t.Errorf("like rows = %d, want exactly 1", count)
	}
}

func TestUnlikeWithoutLikeConflicts(t *testing.T) {
	r := setupServer(t)
	_, aliceToken := createUser(t, "Alice", "alice@example.com")
	_, bobToken := createUser(t, "Bob", "bob@example.com")

	w := doRequest(t, r, http.MethodPost, "/api/posts", aliceToken, map[string]string{"text": "nothing to unlike"})
	wantStatus(t, w, http.StatusOK)
	var post models.Post
	decodeBody(t, w, &post)

	w = doRequest(t, r, http.MethodPut, likePath(post.ID), aliceToken, nil)
	wantStatus(t, w, http.StatusOK)

	// Bob never liked the post
	w = doRequest(t, r, http.MethodPut, unlikePath(post.ID), bobToken, nil)
	wantStatus(t, w, http.StatusBadRequest)

	// Alice's like is untouched
	var count int64
	db.DB.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&count)
	if count != 1 {
		t.Errorf("like rows = %d, want 1", count)
	}

	// Alice can unlike her own like
	w = doRequest(t, r, http.MethodPut, unlikePath(post.ID), aliceToken, nil)
	wantStatus(t, w, http.StatusOK)
	var likes []models.Like
	decodeBody(t, w, &likes)
	if len(likes) != 0 {
		t.Errorf("likes = %+v, want empty", likes)
	}
}

func TestDeleteCommentTargetsMatchedComment(t *testing.T) {
	r := setupServer(t)
	_, aliceToken := createUser(t, "Alice", "alice@example.com")
	bob, bobToken := createUser(t, "Bob", "bob@example.com")

	w := doRequest(t, r, http.MethodPost, "/api/posts", aliceToken, map[string]string{"text": "discuss"})
	wantStatus(t, w, http.StatusOK)
	var post models.Post
	decodeBody(t, w, &post)

	// Bob comments three times; comments come back newest first
	for _, text := range []string{"one", "two", "three"} {
		w = doRequest(t, r, http.MethodPost, commentPath(post.ID), bobToken, map[string]string{"text": text})
		wantStatus(t, w, http.StatusOK)
	}
	var comments []models.Comment
	decodeBody(t, w, &comments)
	if len(comments) != 3 {
		t.Fatalf("len(comments) = %d, want 3", len(comments))
	}
	if comments[0].Text != "three" {
		t.Fatalf("head comment = %q, want %q", comments[0].Text, "three")
	}

	// Delete the middle comment by id; the other two survive even though
	// all three share an author
	var middle models.Comment
	for _, cm := range comments {
		if cm.Text == "two" {
			middle = cm
		}
	}
	w = doRequest(t, r, http.MethodDelete, deleteCommentPath(post.ID, middle.ID), bobToken, nil)
	wantStatus(t, w, http.StatusOK)
	decodeBody(t, w, &comments)
	if len(comments) != 2 {
		t.Fatalf("len(comments) = %d, want 2", len(comments))
	}
	for _, cm := range comments {
		if cm.Text == "two" {
			t.Errorf("deleted comment still present: %+v", cm)
		}
		if cm.UserID != bob.ID {
			t.Errorf("comment author = %d, want %d", cm.UserID, bob.ID)
		}
	}
}

func TestDeleteCommentForbiddenForNonAuthor(t *testing.T) {
	r := setupServer(t)
	_, aliceToken := createUser(t, "Alice", "alice@example.com")
	_, bobToken := createUser(t, "Bob", "bob@example.com")

	w := doRequest(t, r, http.MethodPost, "/api/posts", aliceToken, map[string]string{"text": "discuss"})
	wantStatus(t, w, http.StatusOK)
	var post models.Post
	decodeBody(t, w, &post)

	w = doRequest(t, r, http.MethodPost, commentPath(post.ID), bobToken, map[string]string{"text": "bob's words"})
	wantStatus(t, w, http.StatusOK)
	var comments []models.Comment
	decodeBody(t, w, &comments)

	// Alice owns the post but not the comment; the request halts and the
	// comment survives
	w = doRequest(t, r, http.MethodDelete, deleteCommentPath(post.ID, comments[0].ID), aliceToken, nil)
	wantStatus(t, w, http.StatusForbidden)

	var count int64
	db.DB.Model(&models.Comment{}).Where("id = ?", comments[0].ID).Count(&count)
	if count != 1 {
		t.Errorf("comment rows = %d, want 1", count)
	}

	// Unknown comment id is 404
	w = doRequest(t, r, http.MethodDelete, deleteCommentPath(post.ID, 9999), bobToken, nil)
	wantStatus(t, w, http.StatusNotFound)
}
