package apperror

import "errors"

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrGameNotFinished = errors.New("game is not finished")
	ErrRoundNotPlayed  = errors.New("round is not played")
)
