package validate

import (
	"reflect"
	"testing"

	"github.com/bdcommerce/order-extractor/constants"
	"github.com/bdcommerce/order-extractor/internal/extract"
)

func complete() extract.Record {
	return extract.Record{
		Name:         "Rahim",
		Address:      "জেলা: Dhaka",
		Phone:        "01712345678",
		Amount:       "500",
		Note:         "৫০০ টাকা শার্ট",
		DeliveryType: "Home",
	}
}

func TestCheckValidRecord(t *testing.T) {
	if defects := Check(complete()); len(defects) != 0 {
		t.Errorf("complete record flagged: %v", defects)
	}
}

func TestCheckDefects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*extract.Record)
		want   []constants.Field
	}{
		{"missing name", func(r *extract.Record) { r.Name = "" }, []constants.Field{constants.FieldName}},
		{"blank name", func(r *extract.Record) { r.Name = "   " }, []constants.Field{constants.FieldName}},
		{"missing phone", func(r *extract.Record) { r.Phone = "" }, []constants.Field{constants.FieldPhone}},
		{"short phone", func(r *extract.Record) { r.Phone = "0171234567" }, []constants.Field{constants.FieldPhone}},
		{"long phone", func(r *extract.Record) { r.Phone = "017123456789" }, []constants.Field{constants.FieldPhone}},
		{"missing address", func(r *extract.Record) { r.Address = "" }, []constants.Field{constants.FieldAddress}},
		{"missing amount", func(r *extract.Record) { r.Amount = "" }, []constants.Field{constants.FieldAmount}},
		{
			"everything missing",
			func(r *extract.Record) { *r = extract.Record{DeliveryType: "Home"} },
			[]constants.Field{constants.FieldName, constants.FieldPhone, constants.FieldAddress, constants.FieldAmount},
		},
	}
	for _, c := range cases {
		r := complete()
		c.mutate(&r)
		if got := Check(r); !reflect.DeepEqual(got, c.want) {
			t.Errorf("%s: Check = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestCheckNoteAndDeliveryNotValidated(t *testing.T) {
	r := complete()
	r.Note = ""
	if defects := Check(r); len(defects) != 0 {
		t.Errorf("empty note should not be a defect: %v", defects)
	}
}
