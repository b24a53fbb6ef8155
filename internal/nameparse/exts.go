package nameparse

// Known media container and subtitle extensions, lowercased with dot.

var videoExts = map[string]bool{
	".mp4": true, ".mkv": true, ".avi": true, ".mov": true, ".wmv": true,
	".flv": true, ".m4v": true, ".ts": true, ".m2ts": true, ".webm": true,
	".rmvb": true, ".iso": true,
}

var subtitleExts = map[string]bool{
	".srt": true, ".ass": true, ".ssa": true, ".vtt": true,
	".sub": true, ".idx": true, ".sup": true,
}

// IsVideoExt reports whether ext (lowercased, dot included) is a known
// video container.
func IsVideoExt(ext string) bool { return videoExts[ext] }

// IsSubtitleExt reports whether ext is a known subtitle format.
func IsSubtitleExt(ext string) bool { return subtitleExts[ext] }
