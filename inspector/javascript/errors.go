package javascript

import "errors"

// ErrUnsupportedLanguage is returned for files with no matching grammar
var ErrUnsupportedLanguage = errors.New("unsupported file type")
