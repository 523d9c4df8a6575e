// Package version models the four-part NIF version tuple and the dialect
// predicates derived from it.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// FileVersion is the packed main file version, one byte per component.
type FileVersion uint32

// Known file versions
const (
	V2_3        FileVersion = 0x02030000
	V3_0        FileVersion = 0x03000000
	V3_03       FileVersion = 0x03000300
	V3_1        FileVersion = 0x03010000
	V3_1_0_1    FileVersion = 0x03010001
	V3_3_0_13   FileVersion = 0x0303000D
	V4_0_0_0    FileVersion = 0x04000000
	V4_0_0_2    FileVersion = 0x04000002
	V4_1_0_1    FileVersion = 0x04010001
	V4_1_0_12   FileVersion = 0x0401000C
	V4_2_0_2    FileVersion = 0x04020002
	V4_2_1_0    FileVersion = 0x04020100
	V4_2_2_0    FileVersion = 0x04020200
	V5_0_0_1    FileVersion = 0x05000001
	V5_0_0_6    FileVersion = 0x05000006
	V10_0_0_0   FileVersion = 0x0A000000
	V10_0_1_0   FileVersion = 0x0A000100
	V10_0_1_2   FileVersion = 0x0A000102
	V10_0_1_3   FileVersion = 0x0A000103
	V10_0_1_8   FileVersion = 0x0A000108
	V10_1_0_0   FileVersion = 0x0A010000
	V10_1_0_101 FileVersion = 0x0A010065
	V10_1_0_103 FileVersion = 0x0A010067
	V10_1_0_104 FileVersion = 0x0A010068
	V10_1_0_106 FileVersion = 0x0A01006A
	V10_1_0_108 FileVersion = 0x0A01006C
	V10_1_0_109 FileVersion = 0x0A01006D
	V10_1_0_110 FileVersion = 0x0A01006E
	V10_1_0_112 FileVersion = 0x0A010070
	V10_1_0_113 FileVersion = 0x0A010071
	V10_1_0_114 FileVersion = 0x0A010072
	V10_2_0_0   FileVersion = 0x0A020000
	V10_2_0_1   FileVersion = 0x0A020001
	V10_3_0_1   FileVersion = 0x0A030001
	V10_4_0_1   FileVersion = 0x0A040001
	V20_0_0_2   FileVersion = 0x14000002
	V20_0_0_3   FileVersion = 0x14000003
	V20_0_0_4   FileVersion = 0x14000004
	V20_0_0_5   FileVersion = 0x14000005
	V20_1_0_0   FileVersion = 0x14010000
	V20_1_0_1   FileVersion = 0x14010001
	V20_1_0_2   FileVersion = 0x14010002
	V20_1_0_3   FileVersion = 0x14010003
	V20_2_0_5   FileVersion = 0x14020005
	V20_2_0_7   FileVersion = 0x14020007
	V20_2_0_8   FileVersion = 0x14020008
	V20_3_0_1   FileVersion = 0x14030001
	V20_3_0_2   FileVersion = 0x14030002
	V20_3_0_3   FileVersion = 0x14030003
	V20_3_0_6   FileVersion = 0x14030006
	V20_3_0_9   FileVersion = 0x14030009
	V20_5_0_0   FileVersion = 0x14050000
	V20_6_0_0   FileVersion = 0x14060000
	V20_6_5_0   FileVersion = 0x14060500
	V30_0_0_2   FileVersion = 0x1E000002
	V30_1_0_3   FileVersion = 0x1E010003
	VUnknown    FileVersion = 0xFFFFFFFF
)

// Known lists every named file version, lowest first.
var Known = []FileVersion{
	V2_3, V3_0, V3_03, V3_1, V3_1_0_1, V3_3_0_13, V4_0_0_0, V4_0_0_2, V4_1_0_1, V4_1_0_12,
	V4_2_0_2, V4_2_1_0, V4_2_2_0, V5_0_0_1, V5_0_0_6, V10_0_0_0, V10_0_1_0, V10_0_1_2,
	V10_0_1_3, V10_0_1_8, V10_1_0_0, V10_1_0_101, V10_1_0_103, V10_1_0_104, V10_1_0_106,
	V10_1_0_108, V10_1_0_109, V10_1_0_110, V10_1_0_112, V10_1_0_113, V10_1_0_114,
	V10_2_0_0, V10_2_0_1, V10_3_0_1, V10_4_0_1, V20_0_0_2, V20_0_0_3, V20_0_0_4, V20_0_0_5, V20_1_0_0, V20_1_0_1,
	V20_1_0_2, V20_1_0_3, V20_2_0_5, V20_2_0_7, V20_2_0_8, V20_3_0_1, V20_3_0_2, V20_3_0_3, V20_3_0_6,
	V20_3_0_9, V20_5_0_0, V20_6_0_0, V20_6_5_0, V30_0_0_2, V30_1_0_3,
}

// ToFile packs four version components into a FileVersion.
func ToFile(major, minor, patch, internal uint8) FileVersion {
	return FileVersion(uint32(major)<<24 | uint32(minor)<<16 | uint32(patch)<<8 | uint32(internal))
}

// ToArray is the inverse of ToFile.
func ToArray(v FileVersion) [4]uint8 {
	return [4]uint8{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}
}

// String renders the version the way the header magic line does.
func (v FileVersion) String() string {
	a := ToArray(v)
	if v <= V3_1 {
		return fmt.Sprintf("%d.%d", a[0], a[1])
	}
	return fmt.Sprintf("%d.%d.%d.%d", a[0], a[1], a[2], a[3])
}

// ParseFileVersion parses "20.2.0.7" or "3.1" into a FileVersion.
func ParseFileVersion(s string) (FileVersion, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) < 2 || len(parts) > 4 {
		return VUnknown, fmt.Errorf("invalid version string %q", s)
	}

	var a [4]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return VUnknown, fmt.Errorf("invalid version component %q in %q: %w", p, s, err)
		}
		a[i] = uint8(n)
	}
	return ToFile(a[0], a[1], a[2], a[3]), nil
}

// NiVersion is the version tuple a file is read and written with.
type NiVersion struct {
	file   FileVersion
	user   uint32
	stream uint32
	nds    uint32
	vstr   string
}

// New returns a version tuple with the display string already computed.
func New(file FileVersion, user, stream uint32) *NiVersion {
	v := &NiVersion{user: user, stream: stream}
	v.SetFile(file)
	return v
}

// File returns the main file version.
func (v *NiVersion) File() FileVersion { return v.file }

// User returns the user version.
func (v *NiVersion) User() uint32 { return v.user }

// Stream returns the Bethesda stream version.
func (v *NiVersion) Stream() uint32 { return v.stream }

// NDS returns the Nintendo DS version, zero for every other dialect.
func (v *NiVersion) NDS() uint32 { return v.nds }

// String returns the cached display string.
func (v *NiVersion) String() string { return v.vstr }

// SetFile sets the file version and recomputes the display string.
func (v *NiVersion) SetFile(file FileVersion) {
	v.file = file
	v.vstr = file.String()
}

// SetUser sets the user version.
func (v *NiVersion) SetUser(user uint32) { v.user = user }

// SetStream sets the stream version.
func (v *NiVersion) SetStream(stream uint32) { v.stream = stream }

// SetNDS sets the NDS version.
func (v *NiVersion) SetNDS(nds uint32) { v.nds = nds }

// Clone returns an independent copy.
func (v *NiVersion) Clone() *NiVersion {
	c := *v
	return &c
}

// IsBethesda reports any Bethesda dialect.
func (v *NiVersion) IsBethesda() bool {
	return (v.file == V20_2_0_7 && v.user >= 11) || v.IsOB()
}

// IsOB reports Oblivion.
func (v *NiVersion) IsOB() bool {
	return ((v.file == V10_1_0_106 || v.file == V10_2_0_0) && v.user >= 3 && v.user < 11) ||
		(v.file == V20_0_0_4 && (v.user == 10 || v.user == 11)) ||
		(v.file == V20_0_0_5 && v.user == 11)
}

// IsFO3 reports Fallout 3 and New Vegas.
func (v *NiVersion) IsFO3() bool {
	return v.file == V20_2_0_7 && v.stream > 11 && v.stream < 83
}

// IsSK reports Skyrim LE.
func (v *NiVersion) IsSK() bool {
	return v.file == V20_2_0_7 && v.stream == 83
}

// IsSSE reports Skyrim Special Edition.
func (v *NiVersion) IsSSE() bool {
	return v.file == V20_2_0_7 && v.stream == 100
}

// IsFO4 reports Fallout 4.
func (v *NiVersion) IsFO4() bool {
	return v.file == V20_2_0_7 && v.stream >= 130 && v.stream <= 139
}

// IsFO76 reports Fallout 76.
func (v *NiVersion) IsFO76() bool {
	return v.file == V20_2_0_7 && v.stream == 155
}

// HeaderString returns the magic line written at the start of a file,
// without the trailing newline.
func (v *NiVersion) HeaderString() string {
	if v.nds != 0 {
		return "NDSNIF....@....@...., Version " + v.vstr
	}
	if v.file <= V10_0_1_0 {
		return "NetImmerse File Format, Version " + v.vstr
	}
	return "Gamebryo File Format, Version " + v.vstr
}

// Oblivion returns the Oblivion version tuple.
func Oblivion() *NiVersion { return New(V20_0_0_5, 11, 11) }

// FO3 returns the Fallout 3 / New Vegas version tuple.
func FO3() *NiVersion { return New(V20_2_0_7, 11, 34) }

// SK returns the Skyrim LE version tuple.
func SK() *NiVersion { return New(V20_2_0_7, 12, 83) }

// SSE returns the Skyrim Special Edition version tuple.
func SSE() *NiVersion { return New(V20_2_0_7, 12, 100) }

// FO4 returns the Fallout 4 version tuple.
func FO4() *NiVersion { return New(V20_2_0_7, 12, 130) }

// FO76 returns the Fallout 76 version tuple.
func FO76() *NiVersion { return New(V20_2_0_7, 12, 155) }
