package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/url"
	"sort"
	"strings"
)

type Parameter map[string]string

func (p Parameter) Encode() string {
	var parameters []string
	for key, value := range p {
		parameters = append(parameters, key+"="+url.QueryEscape(value))
	}
	sort.Strings(parameters)
	return strings.Join(parameters, "&")
}

type Body interface {
	ToReader() (io.Reader, string, error)
}

type JSON map[string]any

func (j JSON) ToReader() (io.Reader, string, error) {
	b, err := json.Marshal(j)
	if err != nil {
		return nil, "", err
	}

	return bytes.NewBuffer(b), "application/json", nil
}

type jsonValue struct {
	v any
}

// JSONValue wraps any marshalable value as a JSON request body.
func JSONValue(v any) Body {
	return jsonValue{v: v}
}

func (j jsonValue) ToReader() (io.Reader, string, error) {
	b, err := json.Marshal(j.v)
	if err != nil {
		return nil, "", err
	}

	return bytes.NewBuffer(b), "application/json", nil
}

type Response struct {
	Code int
	Body []byte
}

func (r *Response) Parse(v any) error {
	return json.Unmarshal(r.Body, v)
}
