package fragment

import (
	"fmt"
	"strings"
	"time"

	"github.com/evanw/esbuild/pkg/api"
)

// script wires the interactive affordances of every fragment through
// delegated listeners. The guard keeps several embedded fragments from
// binding the document listener more than once.
const script = `(function () {
  if (window.__fragmentsBound) {
    return;
  }
  window.__fragmentsBound = true;

  document.addEventListener('click', function (event) {
    var toggle = event.target.closest('.navigation__mobileToggle');
    if (toggle) {
      var menu = toggle.parentElement.querySelector('.navigation__menu');
      if (menu) {
        var open = menu.classList.toggle('navigation__menuOpen');
        toggle.setAttribute('aria-expanded', open ? 'true' : 'false');
      }
      return;
    }

    var readMore = event.target.closest('.content-section__readMoreButton');
    if (readMore) {
      var description = readMore.parentElement.querySelector('.content-section__cardDescription');
      if (description) {
        var expanded = description.classList.toggle('content-section__expanded');
        readMore.textContent = expanded ? 'Read less' : 'Read more';
        readMore.setAttribute('aria-expanded', expanded ? 'true' : 'false');
      }
      return;
    }

    var tab = event.target.closest('.locations-carousel__tab');
    if (tab) {
      var root = tab.closest('.locations-carousel__locationsCarousel');
      if (!root) {
        return;
      }
      var index = tab.getAttribute('data-index');
      root.querySelectorAll('.locations-carousel__tab').forEach(function (el) {
        var active = el === tab;
        el.classList.toggle('locations-carousel__tabActive', active);
        el.setAttribute('aria-selected', active ? 'true' : 'false');
      });
      root.querySelectorAll('.locations-carousel__progressDot').forEach(function (el, i) {
        el.classList.toggle('locations-carousel__progressDotActive', String(i) === index);
      });
      root.querySelectorAll('.locations-carousel__bottomContentInner').forEach(function (el) {
        el.hidden = el.getAttribute('data-index') !== index;
      });
      var track = root.querySelector('.locations-carousel__carouselTrack');
      if (track) {
        track.style.setProperty('--slide-index', index);
      }
    }
  });
})();
`

// Script returns the shared interactivity script wrapped in a script
// element. With minify the body goes through esbuild; the unminified body
// is still parsed so a syntax error never reaches the output.
func Script(minify bool) (string, error) {
	result := api.Transform(script, api.TransformOptions{
		Loader:            api.LoaderJS,
		Target:            api.ES2017,
		MinifyWhitespace:  minify,
		MinifyIdentifiers: minify,
		MinifySyntax:      minify,
	})
	if len(result.Errors) > 0 {
		msg := result.Errors[0]
		return "", fmt.Errorf("fragment script: %s", msg.Text)
	}
	body := script
	if minify {
		body = string(result.Code)
	}
	return "<script>\n" + body + "</script>\n", nil
}

// AssembleHTML wraps rendered markup with the start and end comments and
// appends the script.
func AssembleHTML(name string, generated time.Time, markup, scriptBlock string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<!-- Fragment: %s -->\n", name)
	fmt.Fprintf(&b, "<!-- Generated: %s -->\n", Timestamp(generated))
	b.WriteString(markup)
	if !strings.HasSuffix(markup, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(scriptBlock)
	fmt.Fprintf(&b, "<!-- End Fragment: %s -->\n", name)
	return b.String()
}
