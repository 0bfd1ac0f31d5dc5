package tetrion

import "errors"

// Error taxonomy (spec.md §7). CannotMove, CannotRotate and CannotHold are
// ordinary rule denials a host is expected to swallow; BlockOut and LockOut
// are the two terminal conditions a driver must treat as game-over.
var (
	// ErrCannotMove means a translation would overlap the lock stack or
	// leave the field. Move and Lock also return it when no piece is active.
	ErrCannotMove = errors.New("tetrion: cannot move")
	// ErrCannotRotate means every kick candidate (and, for 180 degree
	// turns, both fallback strategies) failed.
	ErrCannotRotate = errors.New("tetrion: cannot rotate")
	// ErrCannotHold means hold was already used for the current piece.
	ErrCannotHold = errors.New("tetrion: cannot hold")
	// ErrBlockOut means a spawn's blocks overlap the lock stack: terminal.
	ErrBlockOut = errors.New("tetrion: block out")
	// ErrLockOut means a piece locked entirely inside the vanish zone: terminal.
	ErrLockOut = errors.New("tetrion: lock out")
)

// GameOver reports whether err is one of the two terminal error kinds.
func GameOver(err error) bool {
	return errors.Is(err, ErrBlockOut) || errors.Is(err, ErrLockOut)
}
