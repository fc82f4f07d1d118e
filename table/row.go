package table

import (
	"encoding/binary"
	"strings"
)

// Row is the engine's one and only schema: id, username, email. Field
// length constraints (username <= UsernameMaxLen, email <= EmailMaxLen)
// are enforced upstream by the statement parser; Serialize/Deserialize
// trust that contract and simply lay the fields out fixed-width.
type Row struct {
	ID       uint32
	Username string
	Email    string
}

// SerializeRow writes row into dst as [id | username buffer | email buffer],
// with the trailing NUL bytes of each string field left in place.
func SerializeRow(row Row, dst []byte) {
	for i := range dst {
		dst[i] = 0
	}
	binary.LittleEndian.PutUint32(dst[idOffset:idOffset+idSize], row.ID)
	copy(dst[usernameOffset:usernameOffset+usernameSize], row.Username)
	copy(dst[emailOffset:emailOffset+emailSize], row.Email)
}

// DeserializeRow reads a Row back out of its fixed-width cell value.
func DeserializeRow(src []byte) Row {
	id := binary.LittleEndian.Uint32(src[idOffset : idOffset+idSize])
	username := nulTerminated(src[usernameOffset : usernameOffset+usernameSize])
	email := nulTerminated(src[emailOffset : emailOffset+emailSize])
	return Row{ID: id, Username: username, Email: email}
}

// nulTerminated trims a fixed-width buffer at its first NUL byte.
func nulTerminated(buf []byte) string {
	if i := strings.IndexByte(string(buf), 0); i >= 0 {
		return string(buf[:i])
	}
	return string(buf)
}
