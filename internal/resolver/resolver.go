package resolver

import (
	"fmt"
	"os"
	"unicode"
)

// Session is the resolved destination for one run. Folder is guaranteed
// unique-or-confirmed; creating it is left to the caller.
type Session struct {
	Folder string
	Resume bool
}

// PromptFunc asks the operator a single-character question. A nil PromptFunc
// means non-interactive mode; the new-folder default applies.
type PromptFunc func(question string) (rune, error)

// Resolve picks the destination folder for this run.
//
// If base does not exist it is used as-is. If it exists, the operator is asked
// whether to continue the previous download into it; only a case-insensitive
// 'c' selects continue (resume mode). Any other answer, a prompt error, or a
// nil prompt falls through to versioning: base-1, base-2, ... until a name is
// free.
func Resolve(base string, ask PromptFunc) (Session, error) {
	exists, err := dirExists(base)
	if err != nil {
		return Session{}, err
	}
	if !exists {
		return Session{Folder: base, Resume: false}, nil
	}

	if ask != nil {
		question := fmt.Sprintf("Download folder %s found in the current directory.\n[C]ontinue the previous download or create a [N]ew folder? [N] ", base)
		answer, err := ask(question)
		if err == nil && unicode.ToLower(answer) == 'c' {
			return Session{Folder: base, Resume: true}, nil
		}
	}

	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		exists, err := dirExists(candidate)
		if err != nil {
			return Session{}, err
		}
		if !exists {
			return Session{Folder: candidate, Resume: false}, nil
		}
	}
}

func dirExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
