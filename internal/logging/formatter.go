package logging

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Formatter renders entries as
//
//	2006-01-02T15:04:05Z [INFO] [component] message [field:value]
type Formatter struct {
	// PrefixFields appear between the level and the message, in this order.
	PrefixFields []string
}

func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	prefixFields, otherFields := f.splitFields(entry)

	b := &bytes.Buffer{}
	b.WriteString(entry.Time.Format(time.RFC3339))

	level := strings.ToUpper(entry.Level.String())
	fmt.Fprintf(b, " \x1b[%dm[%s]", levelColor(entry.Level), level[:4])

	if len(prefixFields) > 0 {
		b.WriteString(" [")
		for i, field := range prefixFields {
			if i > 0 {
				b.WriteByte('>')
			}
			fmt.Fprintf(b, "%v", entry.Data[field])
		}
		b.WriteByte(']')
	}
	b.WriteString("\x1b[0m ")

	b.WriteString(strings.TrimSpace(entry.Message))

	for _, field := range otherFields {
		fmt.Fprintf(b, " [%s:%v]", field, entry.Data[field])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func (f *Formatter) splitFields(entry *logrus.Entry) ([]string, []string) {
	prefixFields := []string{}
	otherFields := []string{}
	isPrefixField := map[string]bool{}
	for _, field := range f.PrefixFields {
		isPrefixField[field] = true
		if _, ok := entry.Data[field]; ok {
			prefixFields = append(prefixFields, field)
		}
	}
	for field := range entry.Data {
		if !isPrefixField[field] {
			otherFields = append(otherFields, field)
		}
	}
	sort.Strings(otherFields)
	return prefixFields, otherFields
}

const (
	colorRed    = 31
	colorYellow = 33
	colorBlue   = 36
	colorGray   = 37
)

func levelColor(level logrus.Level) int {
	switch level {
	case logrus.DebugLevel, logrus.TraceLevel:
		return colorGray
	case logrus.WarnLevel:
		return colorYellow
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return colorRed
	default:
		return colorBlue
	}
}
