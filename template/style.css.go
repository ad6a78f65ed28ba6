package template

const StyleCSS = `
body {
  font-family: serif;
  line-height: 1.6;
  margin: 1em;
}

h1 {
  font-size: 1.4em;
  margin-bottom: 1em;
  text-align: center;
}

h2, h3 {
  text-align: center;
  margin: 0.8em 0;
}

p {
  text-indent: 0;
  margin: 0.5em 0;
}

img {
  max-width: 100%;
  height: auto;
  display: block;
  margin: 1em auto;
}

blockquote {
  margin: 1em 2em;
  font-style: italic;
}
`
