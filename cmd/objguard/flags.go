package main

import "strings"

// listValue is a repeatable flag; comma separated values are split
type listValue []string

// Set implements [flag.Value].
func (l *listValue) Set(value string) error {
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			*l = append(*l, item)
		}
	}
	return nil
}

// String implements [flag.Value].
func (l *listValue) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}
