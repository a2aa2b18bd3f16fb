package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/bdcommerce/order-extractor/constants"
	"github.com/bdcommerce/order-extractor/internal/common"
)

const rahim = "নাম: Rahim\nমোবাইল: ০১৭১২৩৪৫৬৭৮\nজেলা: Dhaka\nঅর্ডার\n৫০০ টাকা শার্ট"

func TestProcessEmptyInput(t *testing.T) {
	p := NewProcessor(nil, nil, nil)
	for _, in := range []string{"", "   \n \t "} {
		if _, err := p.Process(context.Background(), in); !errors.Is(err, common.ErrNoInput) {
			t.Errorf("Process(%q) err = %v, want ErrNoInput", in, err)
		}
	}
}

func TestProcessSingleValidRecord(t *testing.T) {
	p := NewProcessor(nil, nil, nil)
	summary, err := p.Process(context.Background(), rahim)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if summary.Blocks != 1 {
		t.Errorf("Blocks = %d, want 1", summary.Blocks)
	}
	if len(summary.Rows) != 1 || len(summary.Rejected) != 0 {
		t.Fatalf("rows=%d rejected=%d", len(summary.Rows), len(summary.Rejected))
	}
	row := summary.Rows[0]
	if row.Invoice != 1 {
		t.Errorf("Invoice = %d, want 1", row.Invoice)
	}
	r := row.Record
	if r.Name != "Rahim" || r.Phone != "01712345678" || r.Address != "জেলা: Dhaka" ||
		r.Amount != "500" || r.Note != "৫০০ টাকা শার্ট" || r.DeliveryType != "Home" {
		t.Errorf("record = %+v", r)
	}
}

func TestProcessSkipsRejectedAndClosesGaps(t *testing.T) {
	p := NewProcessor(nil, nil, nil)
	input := rahim + "\n\n" + "নাম: Karim\nজেলা: Chittagong\nঅর্ডার\n৬০০ টাকা প্যান্ট"
	summary, err := p.Process(context.Background(), input)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if summary.Blocks != 2 {
		t.Errorf("Blocks = %d, want 2", summary.Blocks)
	}
	if len(summary.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(summary.Rows))
	}
	if summary.Rows[0].Invoice != 1 || summary.Rows[0].Record.Name != "Rahim" {
		t.Errorf("row = %+v", summary.Rows[0])
	}
	if len(summary.Rejected) != 1 {
		t.Fatalf("rejected = %d, want 1", len(summary.Rejected))
	}
	rej := summary.Rejected[0]
	if rej.BlockIndex != 2 {
		t.Errorf("rejected index = %d, want 2", rej.BlockIndex)
	}
	if len(rej.Missing) != 1 || rej.Missing[0] != constants.FieldPhone {
		t.Errorf("missing = %v, want [Phone]", rej.Missing)
	}
}

func TestProcessAllRejected(t *testing.T) {
	p := NewProcessor(nil, nil, nil)
	summary, err := p.Process(context.Background(), "নাম: Karim\nno phone here")
	if !errors.Is(err, common.ErrNoValidData) {
		t.Fatalf("err = %v, want ErrNoValidData", err)
	}
	if summary == nil || summary.Blocks != 1 || len(summary.Rejected) != 1 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestProcessToXLSX(t *testing.T) {
	p := NewProcessor(nil, nil, nil)
	summary, data, err := p.ProcessToXLSX(context.Background(), rahim)
	if err != nil {
		t.Fatalf("ProcessToXLSX: %v", err)
	}
	if len(data) == 0 {
		t.Error("empty workbook bytes")
	}
	if len(summary.Rows) != 1 {
		t.Errorf("rows = %d", len(summary.Rows))
	}
}

func TestProcessCancelled(t *testing.T) {
	p := NewProcessor(nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Process(ctx, rahim); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
