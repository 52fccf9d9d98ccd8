package resolve

import (
	"bufio"
	"context"
	"io"
	"strings"

	buildgenerrors "github.com/bazelbuild/BUILD-file-generator/errors"
)

// UserMappingResolver parses a text file of "classid,label" lines,
// provided once up front, and resolves any class present in it.
type UserMappingResolver struct {
	mapping map[string]string
}

// LoadUserMapping parses r into a UserMappingResolver. It rejects any class
// id containing "$" and any duplicate key mapped to a different value
// (spec.md section 4.2).
func LoadUserMapping(r io.Reader) (*UserMappingResolver, error) {
	mapping := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		idx := strings.LastIndex(line, ",")
		if idx <= 0 || idx == len(line)-1 {
			return nil, buildgenerrors.NewUserMappingError("malformed user-mapping line: " + line)
		}
		classID, label := line[:idx], line[idx+1:]
		if strings.ContainsRune(classID, '$') {
			return nil, buildgenerrors.NewUserMappingError("user-mapping class id contains '$': " + classID)
		}
		if existing, ok := mapping[classID]; ok && existing != label {
			return nil, buildgenerrors.NewUserMappingError(
				"user-mapping has duplicate key " + classID + " with distinct values " + existing + " and " + label)
		}
		mapping[classID] = label
	}
	if err := scanner.Err(); err != nil {
		return nil, buildgenerrors.NewUserMappingError("reading user-mapping: " + err.Error())
	}
	return &UserMappingResolver{mapping: mapping}, nil
}

func (r *UserMappingResolver) Name() string { return "user-mapping" }

func (r *UserMappingResolver) Resolve(_ context.Context, classes []string) (map[string]string, error) {
	resolved := make(map[string]string)
	for _, cls := range classes {
		if label, ok := r.mapping[cls]; ok {
			resolved[cls] = label
		}
	}
	return resolved, nil
}
