package rtspingest

import (
	"strconv"

	"github.com/clearskyvideo/rtspingest/pkg/liberrors"
	"github.com/clearskyvideo/rtspingest/pkg/sdp"
)

// videoMedia holds the attributes of the video media section this session
// cares about, per base spec §3's SdpDescription entity.
type videoMedia struct {
	payloadType uint8
	control     string // control attribute, or "*" if absent
}

// findVideoMedia scans a parsed SDP body for its video media section and
// returns the negotiated payload type and control attribute. Per base spec
// §3, a missing a=control on the video section defaults to "*".
func findVideoMedia(desc *sdp.SessionDescription, wantPayloadType uint8) (videoMedia, error) {
	for _, md := range desc.MediaDescriptions {
		if md.MediaName.Media != "video" {
			continue
		}

		found := false
		for _, f := range md.MediaName.Formats {
			pt, err := strconv.ParseUint(f, 10, 8)
			if err != nil {
				continue
			}
			if uint8(pt) == wantPayloadType {
				found = true
				break
			}
		}
		if !found && len(md.MediaName.Formats) > 0 {
			// the video section exists but doesn't advertise the
			// requested payload type; keep scanning in case there is
			// more than one video section.
			continue
		}

		control := "*"
		if v, ok := md.Attribute("control"); ok && v != "" {
			control = v
		}

		return videoMedia{payloadType: wantPayloadType, control: control}, nil
	}

	return videoMedia{}, liberrors.ErrSessionNoVideoMedia{}
}
