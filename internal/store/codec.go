package store

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const statusOK = "OK"

// queryOutcome is one statement result inside a query response.
type queryOutcome struct {
	Time   string              `json:"time"`
	Status string              `json:"status"`
	Detail string              `json:"detail"`
	Result jsoniter.RawMessage `json:"result"`
}

// decodeRows decodes the last statement result of a raw query response into
// typed documents. Record ids come back as `table:⟨key⟩`; they are normalised
// to the bare key before decoding so the documents carry the same id they
// were stored under.
func decodeRows[T any](table string, res any) ([]T, error) {
	if res == nil {
		return nil, nil
	}

	data, err := json.Marshal(res)
	if err != nil {
		return nil, errors.Wrap(err, "store: encode query response")
	}

	var outcomes []queryOutcome
	if err := json.Unmarshal(data, &outcomes); err != nil {
		return nil, errors.Wrap(err, "store: decode query response")
	}
	if len(outcomes) == 0 {
		return nil, errors.New("store: empty query response")
	}

	last := outcomes[len(outcomes)-1]
	if last.Status != statusOK {
		return nil, errors.Errorf("store: query failed on %s: %s %s", table, last.Status, last.Detail)
	}
	if len(last.Result) == 0 || string(last.Result) == "null" {
		return nil, nil
	}

	var rawRows []map[string]any
	if err := json.Unmarshal(last.Result, &rawRows); err != nil {
		return nil, errors.Wrapf(err, "store: decode rows on %s", table)
	}

	rows := make([]T, 0, len(rawRows))
	for _, doc := range rawRows {
		if doc == nil {
			continue
		}
		normalizeRecordID(doc, table)
		buf, err := json.Marshal(doc)
		if err != nil {
			return nil, errors.Wrapf(err, "store: encode row on %s", table)
		}
		var row T
		if err := json.Unmarshal(buf, &row); err != nil {
			return nil, errors.Wrapf(err, "store: decode row on %s", table)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// normalizeRecordID rewrites a `table:⟨key⟩` record id to the bare key.
func normalizeRecordID(doc map[string]any, table string) {
	raw, ok := doc["id"].(string)
	if !ok {
		return
	}
	raw = strings.TrimPrefix(raw, table+":")
	doc["id"] = strings.Trim(raw, "⟨⟩`")
}

// contentMap renders a document as the CONTENT payload of a statement. The
// id field is dropped: the record id is carried by type::thing in the
// statement itself and must not be overridden by content.
func contentMap(doc any) (map[string]any, error) {
	buf, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "store: encode document")
	}
	var data map[string]any
	if err := json.Unmarshal(buf, &data); err != nil {
		return nil, errors.Wrap(err, "store: document is not an object")
	}
	delete(data, "id")
	return data, nil
}
