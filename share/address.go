package share

import (
	"fmt"
	"regexp"
	"strings"
)

var zipcodePattern = regexp.MustCompile(`^\d{3}-\d{4}$`)

// Zipcode is a Japanese postal code in NNN-NNNN form.
type Zipcode struct {
	value string
}

// NewZipcode validates the NNN-NNNN format.
func NewZipcode(raw string) (Zipcode, error) {
	if !zipcodePattern.MatchString(raw) {
		return Zipcode{}, fmt.Errorf("invalid zipcode: %q", raw)
	}
	return Zipcode{value: raw}, nil
}

// String returns the postal code text.
func (z Zipcode) String() string { return z.value }

// Prefecture is one of the 47 Japanese prefectures. The zero value is
// invalid; construct through PrefectureOf.
type Prefecture struct {
	name string
}

// prefectureNames is the closed set of legal prefecture names, in the
// conventional north-to-south order.
var prefectureNames = []string{
	"北海道",
	"青森県", "岩手県", "宮城県", "秋田県", "山形県", "福島県",
	"茨城県", "栃木県", "群馬県", "埼玉県", "千葉県", "東京都", "神奈川県",
	"新潟県", "富山県", "石川県", "福井県", "山梨県", "長野県",
	"岐阜県", "静岡県", "愛知県", "三重県",
	"滋賀県", "京都府", "大阪府", "兵庫県", "奈良県", "和歌山県",
	"鳥取県", "島根県", "岡山県", "広島県", "山口県",
	"徳島県", "香川県", "愛媛県", "高知県",
	"福岡県", "佐賀県", "長崎県", "熊本県", "大分県", "宮崎県", "鹿児島県", "沖縄県",
}

var prefectureSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(prefectureNames))
	for _, n := range prefectureNames {
		m[n] = struct{}{}
	}
	return m
}()

// PrefectureOf resolves a prefecture by its official name and rejects
// anything outside the 47-entry set.
func PrefectureOf(name string) (Prefecture, error) {
	if _, ok := prefectureSet[name]; !ok {
		return Prefecture{}, fmt.Errorf("unknown prefecture: %q", name)
	}
	return Prefecture{name: name}, nil
}

// String returns the official prefecture name.
func (p Prefecture) String() string { return p.name }

// Municipalities is the city/ward/town portion of an address.
type Municipalities struct {
	value string
}

// NewMunicipalities rejects blank input.
func NewMunicipalities(raw string) (Municipalities, error) {
	if strings.TrimSpace(raw) == "" {
		return Municipalities{}, fmt.Errorf("municipalities must not be blank")
	}
	return Municipalities{value: raw}, nil
}

// String returns the municipalities text.
func (m Municipalities) String() string { return m.value }

// DetailAddress is the street-level portion of an address.
type DetailAddress struct {
	value string
}

// NewDetailAddress rejects blank input.
func NewDetailAddress(raw string) (DetailAddress, error) {
	if strings.TrimSpace(raw) == "" {
		return DetailAddress{}, fmt.Errorf("detail address must not be blank")
	}
	return DetailAddress{value: raw}, nil
}

// String returns the detail address text.
func (d DetailAddress) String() string { return d.value }

// Address is a full postal address. All parts are validated on construction.
type Address struct {
	Zipcode        Zipcode
	Prefecture     Prefecture
	Municipalities Municipalities
	Detail         DetailAddress
}

// NewAddress validates every part and assembles the address.
func NewAddress(zipcode, prefecture, municipalities, detail string) (Address, error) {
	z, err := NewZipcode(zipcode)
	if err != nil {
		return Address{}, err
	}
	p, err := PrefectureOf(prefecture)
	if err != nil {
		return Address{}, err
	}
	m, err := NewMunicipalities(municipalities)
	if err != nil {
		return Address{}, err
	}
	d, err := NewDetailAddress(detail)
	if err != nil {
		return Address{}, err
	}
	return Address{Zipcode: z, Prefecture: p, Municipalities: m, Detail: d}, nil
}

// String renders the address in postal order.
func (a Address) String() string {
	return fmt.Sprintf("%s %s%s%s", a.Zipcode, a.Prefecture, a.Municipalities, a.Detail)
}
