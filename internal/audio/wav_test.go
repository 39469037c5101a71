package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func sine(n int) []byte {
	pcm := make([]byte, n*2)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(int16(i%256*100)))
	}
	return pcm
}

func TestEncodeDecode(t *testing.T) {
	pcm := sine(2400)

	wav := Encode(pcm, 24000, 1)

	if !bytes.HasPrefix(wav, []byte("RIFF")) {
		t.Fatal("missing RIFF header")
	}
	if !bytes.Contains(wav[:12], []byte("WAVE")) {
		t.Fatal("missing WAVE marker")
	}

	got, rate, channels, err := Decode(wav)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if rate != 24000 {
		t.Errorf("sample rate = %d, want 24000", rate)
	}
	if channels != 1 {
		t.Errorf("channels = %d, want 1", channels)
	}
	if !bytes.Equal(got, pcm) {
		t.Error("decoded PCM differs from input")
	}
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"too short", []byte("RIFF")},
		{"not a wav", bytes.Repeat([]byte("x"), 64)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, err := Decode(tt.data); err == nil {
				t.Error("Decode() accepted invalid input")
			}
		})
	}
}

func TestDecode_ExtraChunks(t *testing.T) {
	// Synthesis tools sometimes emit LIST metadata between fmt and data.
	pcm := sine(100)
	wav := Encode(pcm, 22050, 1)

	// Splice a LIST chunk in front of the data chunk.
	dataAt := bytes.Index(wav, []byte("data"))
	list := append([]byte("LIST"), 4, 0, 0, 0, 'I', 'N', 'F', 'O')
	spliced := append(append(append([]byte{}, wav[:dataAt]...), list...), wav[dataAt:]...)
	binary.LittleEndian.PutUint32(spliced[4:], uint32(len(spliced)-8))

	got, rate, _, err := Decode(spliced)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if rate != 22050 {
		t.Errorf("sample rate = %d", rate)
	}
	if !bytes.Equal(got, pcm) {
		t.Error("decoded PCM differs from input")
	}
}
