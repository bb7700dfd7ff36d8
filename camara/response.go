package camara

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/tidwall/gjson"
)

// Record is the untyped form of one element of an envelope's "dados".
type Record map[string]any

// Link is one entry of an envelope's "links" array.
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// Response is one decoded envelope:
//
//	{"dados": <payload>, "links": [{"rel": "next", "href": "..."}]}
type Response struct {
	StatusCode int
	URL        string
	Body       []byte
	Dados      json.RawMessage
	Links      []Link
}

// Link returns the href of the first link with the given relation.
func (r *Response) Link(rel string) (string, bool) {
	for _, l := range r.Links {
		if l.Rel == rel && l.Href != "" {
			return l.Href, true
		}
	}
	return "", false
}

// Next returns the href of the next page, if any.
func (r *Response) Next() (string, bool) {
	return r.Link("next")
}

// Decode unmarshals the payload into out.
func (r *Response) Decode(out any) error {
	if err := json.Unmarshal(r.Dados, out); err != nil {
		return &DecodeError{URL: r.URL, Reason: fmt.Sprintf(`"dados" does not fit %T`, out), Err: err}
	}
	return nil
}

func (r *Response) empty() bool {
	d := gjson.ParseBytes(r.Dados)
	switch {
	case d.Type == gjson.Null:
		return true
	case d.IsArray():
		return len(d.Array()) == 0
	default:
		return false
	}
}

// resolveLink resolves href against the URL the page was fetched from.
func (r *Response) resolveLink(href string) (string, error) {
	base, err := url.Parse(r.URL)
	if err != nil {
		return "", fmt.Errorf("parsing page URL %q: %w", r.URL, err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", &DecodeError{URL: r.URL, Reason: fmt.Sprintf("invalid next link %q", href), Err: err}
	}
	return base.ResolveReference(ref).String(), nil
}

func decodeEnvelope(target string, status int, body []byte) (*Response, error) {
	if !gjson.ValidBytes(body) {
		return nil, &DecodeError{URL: target, Reason: "body is not valid JSON"}
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, &DecodeError{URL: target, Reason: "expected a JSON object envelope"}
	}
	dados := root.Get("dados")
	if !dados.Exists() {
		return nil, &DecodeError{URL: target, Reason: `envelope has no "dados" field`}
	}

	resp := &Response{
		StatusCode: status,
		URL:        target,
		Body:       body,
		Dados:      json.RawMessage(dados.Raw),
	}
	root.Get("links").ForEach(func(_, link gjson.Result) bool {
		resp.Links = append(resp.Links, Link{
			Rel:  link.Get("rel").String(),
			Href: link.Get("href").String(),
		})
		return true
	})
	return resp, nil
}
