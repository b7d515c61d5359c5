package presentation

import "fmt"

const bannerArt = `
  ___ ___  _ __ ___  ___ _ __   ___  ___| |_
 / __/ _ \| '_ ' _ \/ __| '_ \ / _ \/ __| __|
| (_| (_) | | | | | \__ \ |_) |  __/ (__| |_
 \___\___/|_| |_| |_|___/ .__/ \___|\___|\__|
                        |_|`

const bannerTagline = "Discover and analyze COM object registrations"

// Banner prints the startup header.
func (r *Report) Banner() {
	fmt.Fprintln(r.w, r.render(r.styles.Title, bannerArt))
	fmt.Fprintln(r.w, r.render(r.styles.Subtle, "        "+bannerTagline))
	fmt.Fprintln(r.w)
}
