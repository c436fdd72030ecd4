package analyzer

import (
	"fmt"
	"strings"
)

// DefaultObjectName stands for receivers that cannot be rendered
const DefaultObjectName = "obj"

// PromiseHookMessage renders the unguarded variant message
func PromiseHookMessage(objName string) string {
	objName = objectName(objName)
	return fmt.Sprintf("Please wrap '%s.%s' in 'isAlive(%s)'", objName, MutationMethod, objName)
}

// GuardMessage renders the guarded variant message; utilities select the template
func GuardMessage(objName string, utilities []string) string {
	objName = objectName(objName)
	if len(utilities) == 0 {
		return fmt.Sprintf("Check '!%s.%s' to verify the '%s' is not being destroyed before calling '%s.%s(...)'",
			objName, LivenessProperty, objName, objName, MutationMethod)
	}
	quoted := make([]string, len(utilities))
	for i, name := range utilities {
		quoted[i] = "'" + name + "'"
	}
	return fmt.Sprintf("Use the utility method(s) %s to verify the '%s' is not being destroyed before calling '%s.%s(...)'",
		strings.Join(quoted, " OR "), objName, objName, MutationMethod)
}

func objectName(name string) string {
	if name == "" {
		return DefaultObjectName
	}
	return name
}
