package share

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/neethishnk/hawkcards/internal/model"
)

// ErrInvalidPayload means a ?d= value was not base64 encoded card JSON.
var ErrInvalidPayload = errors.New("invalid portable card payload")

var encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// EncodePortable embeds the whole card as base64(JSON).
func EncodePortable(card model.DigitalCard) (string, error) {
	data, err := json.Marshal(card)
	if err != nil {
		return "", fmt.Errorf("encode card: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodePortable reverses EncodePortable. Standard and URL-safe alphabets
// are accepted, with or without padding; a '+' that arrived as a space from
// an unescaped query string is restored.
func DecodePortable(d string) (*model.DigitalCard, error) {
	d = strings.ReplaceAll(strings.TrimSpace(d), " ", "+")
	if d == "" {
		return nil, ErrInvalidPayload
	}

	var raw []byte
	for _, enc := range encodings {
		if b, err := enc.DecodeString(d); err == nil {
			raw = b
			break
		}
	}
	if raw == nil {
		return nil, ErrInvalidPayload
	}

	var card model.DigitalCard
	if err := json.Unmarshal(raw, &card); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if card.ID == "" {
		return nil, fmt.Errorf("%w: missing card id", ErrInvalidPayload)
	}
	if card.Fields == nil {
		card.Fields = []model.SocialField{}
	}
	return &card, nil
}

// Links holds both forms of a card's public URL.
type Links struct {
	Short    string `json:"url"`
	Portable string `json:"portableUrl"`
}

// BuildLinks returns the short link, resolvable only against this store, and
// the portable link that carries the card itself.
func BuildLinks(baseURL string, card model.DigitalCard) (Links, error) {
	payload, err := EncodePortable(card)
	if err != nil {
		return Links{}, err
	}
	short := strings.TrimRight(baseURL, "/") + "/c/" + url.PathEscape(card.ID)
	return Links{
		Short:    short,
		Portable: short + "?d=" + url.QueryEscape(payload),
	}, nil
}

// QRCodePNG renders content as a size x size PNG.
func QRCodePNG(content string, size int) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.High, size)
	if err != nil {
		return nil, fmt.Errorf("render qr code: %w", err)
	}
	return png, nil
}
