// Package walletid maps between a user's chosen wallet names and the labels
// the remote node sees. The node holds one flat namespace, so every label is
// prefixed with the owning user's fixed-length id; that keeps two users'
// wallets with the same chosen name from colliding and lets a node-wide
// listing be filtered back down to one user by a plain prefix match.
package walletid

import "strings"

// Separator joins the user id and the chosen name in a remote label.
const Separator = "_"

// RemoteID derives the node-facing wallet label for a user's chosen name.
// It is a pure function of its inputs: the same pair always produces the
// same label.
func RemoteID(userID, name string) string {
	return userID + Separator + name
}

// LocalName inverts RemoteID: when remoteID belongs to userID it returns the
// chosen name and true, otherwise "" and false. Membership is decided purely
// by the fixed-length id prefix.
func LocalName(userID, remoteID string) (string, bool) {
	if len(remoteID) <= len(userID)+len(Separator) {
		return "", false
	}
	if remoteID[:len(userID)] != userID {
		return "", false
	}
	if !strings.HasPrefix(remoteID[len(userID):], Separator) {
		return "", false
	}
	return remoteID[len(userID)+len(Separator):], true
}
