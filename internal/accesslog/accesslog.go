// Package accesslog records the append-only history of file operations and
// the illustrative timing model attached to each entry.
//
// Seek and transfer costs are teaching constants, not calibrated to hardware:
// a seek costs 0.1 per block of head travel (1 for zero or one block) and a
// transfer costs 0.5 per block.
package accesslog

import (
	"fmt"
	"math"
	"time"
)

// Operation is the kind of a logged operation.
type Operation uint8

const (
	OpRead Operation = iota
	OpWrite
	OpDelete
	OpCreate
	OpRecover
)

var opNames = [...]string{"read", "write", "delete", "create", "recover"}

func (o Operation) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// MarshalText implements encoding.TextMarshaler.
func (o Operation) MarshalText() ([]byte, error) {
	if int(o) >= len(opNames) {
		return nil, fmt.Errorf("invalid operation %d", uint8(o))
	}
	return []byte(opNames[o]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Operation) UnmarshalText(b []byte) error {
	for i, name := range opNames {
		if name == string(b) {
			*o = Operation(i)
			return nil
		}
	}
	return fmt.Errorf("unknown operation %q", b)
}

const (
	// SingleSeekCost is the seek cost of touching zero or one block.
	SingleSeekCost = 1.0
	// SeekCostPerBlock is the seek cost per block of distance between consecutive blocks.
	SeekCostPerBlock = 0.1
	// TransferCostPerBlock is the transfer cost per block.
	TransferCostPerBlock = 0.5
)

// Entry is one operation in the access log.
type Entry struct {
	Timestamp    time.Time `json:"timestamp"`
	Operation    Operation `json:"operation"`
	FileID       string    `json:"fileId"`
	FileName     string    `json:"fileName"`
	Blocks       []int     `json:"blocks"`
	SeekTime     float64   `json:"seekTime"`
	TransferTime float64   `json:"transferTime"`
	TotalTime    float64   `json:"totalTime"`
	Success      bool      `json:"success"`
}

// NewEntry builds an entry and computes its timing over blocks. The blocks
// slice is copied.
func NewEntry(ts time.Time, op Operation, fileID, fileName string, blocks []int, success bool) Entry {
	ids := append([]int(nil), blocks...)
	seek := SeekTime(ids)
	transfer := TransferTime(ids)
	return Entry{
		Timestamp:    ts,
		Operation:    op,
		FileID:       fileID,
		FileName:     fileName,
		Blocks:       ids,
		SeekTime:     seek,
		TransferTime: transfer,
		TotalTime:    seek + transfer,
		Success:      success,
	}
}

// SeekTime returns the head-travel cost of visiting ids in order.
func SeekTime(ids []int) float64 {
	if len(ids) <= 1 {
		return SingleSeekCost
	}
	var total float64
	for i := 1; i < len(ids); i++ {
		d := ids[i] - ids[i-1]
		if d < 0 {
			d = -d
		}
		total += float64(d) * SeekCostPerBlock
	}
	return Round(total, 1)
}

// TransferTime returns the cost of transferring ids.
func TransferTime(ids []int) float64 {
	return float64(len(ids)) * TransferCostPerBlock
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
