package profile

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/hr-matcher/internal/utils"
)

var (
	stringSliceType = reflect.TypeOf([]string{})
	timeType        = reflect.TypeOf(time.Time{})
)

// dateLayouts are tried in order. Unparseable dates decode to the zero time.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
}

// stringToListHook turns a bare string into a one-element list and stringifies list items.
func stringToListHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != stringSliceType {
		return data, nil
	}

	switch v := data.(type) {
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out, nil
	}
	return data, nil
}

func stringToTimeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != timeType {
		return data, nil
	}

	s, ok := data.(string)
	if !ok {
		return data, nil
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, nil
}

func decode(input map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(stringToListHook, stringToTimeHook),
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

func clean(items []string) []string {
	return utils.CleanList(items)
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
