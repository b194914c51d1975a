package process

import "strings"

// passwdField indexes the colon-separated columns of the account database.
type passwdField int

const (
	passwdName passwdField = iota
	passwdPassword
	passwdUID
)

// OwnerName returns the account whose uid column equals uid, or "-".
func (r *Reader) OwnerName(uid string) string {
	if uid == "" || uid == NoUser {
		return NoUser
	}
	name := NoUser
	err := scanLines(r.passwdPath, func(line string) bool {
		if strings.HasPrefix(line, "#") {
			return true
		}
		cols := strings.Split(line, ":")
		if len(cols) <= int(passwdUID) {
			return true
		}
		if strings.TrimSpace(cols[passwdUID]) == uid {
			name = cols[passwdName]
			return false
		}
		return true
	})
	if err != nil {
		r.logger.Debug().Err(err).Str("path", r.passwdPath).Msg("account database unavailable")
		return NoUser
	}
	return name
}
