package resolve

import buildgenerrors "github.com/bazelbuild/BUILD-file-generator/errors"

func conflictError(classID, first, second string) error {
	return buildgenerrors.NewResolveConflictError(classID, first, second)
}
