package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the claims carried by a FriendLink identity token.
//
// The WebSocket endpoint treats tokens as opaque and only requires presence,
// so these claims matter solely to clients that want a server-minted identity
// from the guest endpoint.
type Payload struct {
	// StandardClaims embeds exp, iat and iss, used for validity checks when a
	// token is parsed back.
	jwt.StandardClaims `json:"standard_claims"`

	// UserID is the user identifier the token was minted for.
	UserID string `json:"user_id"`

	// UserType is the role of the holder, currently always "guest".
	UserType string `json:"user_type"`
}
