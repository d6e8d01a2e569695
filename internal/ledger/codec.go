package ledger

import (
	"encoding/binary"
	"fmt"
)

// 记录的持久化格式：8字节类型标签 + 按字段顺序的二进制编码。
// 整数一律小端，字符串带 u32 长度前缀，bool 单字节，地址固定32字节。
// 读侧只凭类型标签就能区分 Campaign 和 Donation 的字节。

// EncodeCampaign 编码 Campaign 记录
func EncodeCampaign(c *Campaign) []byte {
	buf := make([]byte, 0, 8+32+32+8+len(c.Title)+8+len(c.Description)+8*3+8+2)
	buf = append(buf, CampaignDiscriminator[:]...)
	buf = append(buf, c.Creator[:]...)
	buf = append(buf, c.PayoutRecipient[:]...)
	buf = appendString(buf, c.Title)
	buf = appendString(buf, c.Description)
	buf = binary.LittleEndian.AppendUint64(buf, c.Goal)
	buf = binary.LittleEndian.AppendUint64(buf, c.DonationUnit)
	buf = binary.LittleEndian.AppendUint64(buf, c.Raised)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(c.EndDate))
	buf = appendBool(buf, c.Complete)
	buf = appendBool(buf, c.Failed)
	return buf
}

// DecodeCampaign 解码 Campaign 记录，类型标签不符或数据截断都报错
func DecodeCampaign(data []byte) (*Campaign, error) {
	r, err := newReader(data, CampaignDiscriminator)
	if err != nil {
		return nil, err
	}
	var c Campaign
	c.Creator = r.address()
	c.PayoutRecipient = r.address()
	c.Title = r.string()
	c.Description = r.string()
	c.Goal = r.uint64()
	c.DonationUnit = r.uint64()
	c.Raised = r.uint64()
	c.EndDate = int64(r.uint64())
	c.Complete = r.bool()
	c.Failed = r.bool()
	if r.err != nil {
		return nil, fmt.Errorf("decode campaign: %w", r.err)
	}
	return &c, nil
}

// EncodeDonation 编码 Donation 记录
func EncodeDonation(d *Donation) []byte {
	buf := make([]byte, 0, 8+32+8)
	buf = append(buf, DonationDiscriminator[:]...)
	buf = append(buf, d.Donor[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, d.Amount)
	return buf
}

// DecodeDonation 解码 Donation 记录
func DecodeDonation(data []byte) (*Donation, error) {
	r, err := newReader(data, DonationDiscriminator)
	if err != nil {
		return nil, err
	}
	var d Donation
	d.Donor = r.address()
	d.Amount = r.uint64()
	if r.err != nil {
		return nil, fmt.Errorf("decode donation: %w", r.err)
	}
	return &d, nil
}

// RecordKind 读出记录的类型标签
func RecordKind(data []byte) (Discriminator, error) {
	var d Discriminator
	if len(data) < len(d) {
		return d, fmt.Errorf("record too short for discriminator: %d bytes", len(data))
	}
	copy(d[:], data[:len(d)])
	return d, nil
}

func appendString(buf []byte, s string) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s)))
	return append(buf, s...)
}

func appendBool(buf []byte, b bool) []byte {
	if b {
		return append(buf, 1)
	}
	return append(buf, 0)
}

type reader struct {
	data []byte
	err  error
}

func newReader(data []byte, want Discriminator) (*reader, error) {
	got, err := RecordKind(data)
	if err != nil {
		return nil, err
	}
	if got != want {
		return nil, fmt.Errorf("record discriminator mismatch: got %x, want %x", got, want)
	}
	return &reader{data: data[len(want):]}, nil
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.data) < n {
		r.err = fmt.Errorf("truncated record: want %d more bytes, have %d", n, len(r.data))
		return nil
	}
	b := r.data[:n]
	r.data = r.data[n:]
	return b
}

func (r *reader) address() Address {
	var a Address
	copy(a[:], r.take(len(a)))
	return a
}

func (r *reader) uint64() uint64 {
	b := r.take(8)
	if r.err != nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *reader) string() string {
	n := r.take(4)
	if r.err != nil {
		return ""
	}
	return string(r.take(int(binary.LittleEndian.Uint32(n))))
}

func (r *reader) bool() bool {
	b := r.take(1)
	if r.err != nil {
		return false
	}
	return b[0] != 0
}
