package dto

import "remindmail/internal/domain/constant"

// Identity is the already-authenticated caller identity supplied out-of-band by the
// authentication collaborator on every request.
type Identity struct {
	Provider  constant.OAuthProvider
	SubjectID string
	Email     string
}
