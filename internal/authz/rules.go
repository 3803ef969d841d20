// Package authz holds the ownership rules governing mutation of posts and
// comments. The functions are pure: they inspect the principal and the target
// entity and decide, with no side effects.
//
// Reads are public, post/comment creation only requires an authenticated
// principal, and nothing restricts user deletion; those checks live at the
// routing layer, not here.
package authz

import "inkwell/internal/models"

// CanEditPost reports whether principal owns the post.
func CanEditPost(principal models.Principal, post *models.Post) bool {
	return principal != nil && post != nil && principal.PrincipalID() == post.UserID
}

// CanDeletePost reports whether principal may delete the post. Deletion uses
// the same ownership rule as editing.
func CanDeletePost(principal models.Principal, post *models.Post) bool {
	return CanEditPost(principal, post)
}

// CanEditComment reports whether principal owns the comment.
func CanEditComment(principal models.Principal, comment *models.Comment) bool {
	return principal != nil && comment != nil && principal.PrincipalID() == comment.UserID
}

// CanDeleteComment reports whether principal may delete the comment.
func CanDeleteComment(principal models.Principal, comment *models.Comment) bool {
	return CanEditComment(principal, comment)
}
