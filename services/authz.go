package services

import (
	apierrors "myapp/errors"
)

// Anonymous is the caller id used when a request carries no identity.
const Anonymous uint = 0

// CanModify is the ownership rule shared by posts and comments: safe methods are
// open to everyone, anything else needs an authenticated caller who owns the resource.
func CanModify(callerID, ownerID uint, safe bool) bool {
	return safe || (callerID != Anonymous && callerID == ownerID)
}

// Authorize turns CanModify into the matching API error.
func Authorize(callerID, ownerID uint, safe bool) error {
	switch {
	case CanModify(callerID, ownerID, safe):
		return nil
	case callerID == Anonymous:
		return apierrors.ErrUnauthenticated
	default:
		return apierrors.ErrForbidden
	}
}

func requireCaller(callerID uint) error {
	if callerID == Anonymous {
		return apierrors.ErrUnauthenticated
	}
	return nil
}
