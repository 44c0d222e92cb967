package base

import (
	"io"

	fastJson "github.com/goccy/go-json"
)

/***************************************
 * JSON
 ***************************************/

// JsonOptions covers both directions, each side ignores what it doesn't use.
type JsonOptions struct {
	PrettyPrint bool
	Strict      bool
}

type JsonOptionFunc = func(*JsonOptions)

func OptionJsonPrettyPrint(enabled bool) JsonOptionFunc {
	return func(jo *JsonOptions) {
		jo.PrettyPrint = enabled
	}
}

// OptionJsonStrict rejects unknown fields while decoding.
func OptionJsonStrict(enabled bool) JsonOptionFunc {
	return func(jo *JsonOptions) {
		jo.Strict = enabled
	}
}

func makeJsonOptions(options []JsonOptionFunc) (result JsonOptions) {
	for _, it := range options {
		it(&result)
	}
	return
}

// JsonSerialize writes documents meant for humans and tools: no html
// escaping and a trailing newline.
func JsonSerialize(x any, dst io.Writer, options ...JsonOptionFunc) error {
	opts := makeJsonOptions(options)

	encoder := fastJson.NewEncoder(dst)
	if opts.PrettyPrint {
		encoder.SetIndent("", "  ")
	}
	return encoder.EncodeWithOption(x,
		fastJson.DisableHTMLEscape(),
		fastJson.DisableNormalizeUTF8())
}

func JsonDeserialize(x any, src io.Reader, options ...JsonOptionFunc) error {
	opts := makeJsonOptions(options)

	decoder := fastJson.NewDecoder(src)
	if opts.Strict {
		decoder.DisallowUnknownFields()
	}
	return decoder.Decode(x)
}
