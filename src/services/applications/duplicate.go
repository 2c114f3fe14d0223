package applications

import (
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// E11000 ... dup key: { email: "a@x.com" }
	dupKeyPattern = regexp.MustCompile(`dup key: \{\s*"?([A-Za-z0-9_.]+)"?\s*:`)
	// E11000 ... index: email_1 dup key: { : "a@x.com" }
	dupIndexPattern = regexp.MustCompile(`index: (?:\S+\.\$)?([A-Za-z0-9_.]+?)_-?1\b`)
)

func isDuplicateCode(code int) bool {
	return code == 11000 || code == 11001 || code == 12582
}

// duplicateField reports whether err is a duplicate key error and, when the
// server says so, which field collided. Only the first collision is reported.
func duplicateField(err error) (string, bool) {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if !isDuplicateCode(e.Code) {
				continue
			}
			if field := keyValueField(e); field != "" {
				return field, true
			}
			return fieldFromMessage(e.Message), true
		}
	}

	if mongo.IsDuplicateKeyError(err) {
		return fieldFromMessage(err.Error()), true
	}
	return "", false
}

func keyValueField(e mongo.WriteError) string {
	if len(e.Raw) == 0 {
		return ""
	}
	val, err := e.Raw.LookupErr("keyValue")
	if err != nil {
		return ""
	}
	doc, ok := val.DocumentOK()
	if !ok {
		return ""
	}
	elems, err := doc.Elements()
	if err != nil || len(elems) == 0 {
		return ""
	}
	return elems[0].Key()
}

func fieldFromMessage(msg string) string {
	if m := dupKeyPattern.FindStringSubmatch(msg); m != nil {
		return m[1]
	}
	if m := dupIndexPattern.FindStringSubmatch(msg); m != nil {
		return m[1]
	}
	return ""
}
