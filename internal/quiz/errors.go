package quiz

import "errors"

var (
	// ErrNotFound indicates no quiz matched the slug or id.
	ErrNotFound = errors.New("quiz not found")
	// ErrForbidden is returned when a caller touches a quiz they do not own.
	ErrForbidden = errors.New("not the quiz owner")
	// ErrPasswordRequired is returned by the password gate when the quiz is
	// protected and no password was supplied.
	ErrPasswordRequired = errors.New("password is required")
	// ErrInvalidQuestion indicates a correct-answer index outside the
	// question's choice list.
	ErrInvalidQuestion = errors.New("correct answer index out of range")
	// ErrNoQuestions rejects quizzes created without any questions.
	ErrNoQuestions = errors.New("quiz has no questions")
	// ErrUserNotFound is returned by the admin listing when the target user
	// does not exist.
	ErrUserNotFound = errors.New("user not found")
)
