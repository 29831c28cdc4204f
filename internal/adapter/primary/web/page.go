package web

const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Duty Time Validator</title>
    <style>
        body { font-family: sans-serif; max-width: 680px; margin: 40px auto; padding: 20px; }
        h1 { color: #333; }
        fieldset { border: 1px solid #ddd; border-radius: 5px; margin: 12px 0; }
        .row { margin: 6px 0; }
        label { display: inline-block; width: 90px; }
        input[type=time] { padding: 4px; }
        button { background: #007bff; color: white; border: none; padding: 8px 16px; border-radius: 5px; cursor: pointer; }
        button.remove { background: #dc3545; padding: 4px 10px; }
        .ok { background: #e6f4ea; padding: 12px; border-radius: 5px; }
        .ng { background: #fdecea; padding: 12px; border-radius: 5px; }
    </style>
</head>
<body>
    <h1>Duty Time Validator</h1>
    <form id="form">
        <fieldset>
            <legend>Duty</legend>
            <div class="row"><label>Start</label><input type="time" id="dutyStart" value="08:00">
                <input type="checkbox" id="dutyStartNext"> next day</div>
            <div class="row"><label>End</label><input type="time" id="dutyEnd" value="16:00">
                <input type="checkbox" id="dutyEndNext"> next day</div>
        </fieldset>
        <fieldset>
            <legend>Breaks</legend>
            <div id="breaks"></div>
            <button type="button" onclick="addBreak()">Add Break</button>
        </fieldset>
        <button type="submit">Validate</button>
    </form>
    <div id="result"></div>
    <script>
        let breaks = [];

        function clock(value, next) {
            const [h, m] = value.split(':').map(Number);
            return { hour: h, minute: m, isNextDay: next };
        }

        function renderBreaks() {
            const el = document.getElementById('breaks');
            el.innerHTML = '';
            breaks.forEach((b, i) => {
                const div = document.createElement('div');
                div.className = 'row';
                div.innerHTML = 'Break ' + (i + 1) + ': ' +
                    '<input type="time" value="' + b.start + '" onchange="breaks[' + i + '].start=this.value">' +
                    '<input type="checkbox" ' + (b.startNext ? 'checked' : '') + ' onchange="breaks[' + i + '].startNext=this.checked">+1 ' +
                    '<input type="time" value="' + b.end + '" onchange="breaks[' + i + '].end=this.value">' +
                    '<input type="checkbox" ' + (b.endNext ? 'checked' : '') + ' onchange="breaks[' + i + '].endNext=this.checked">+1 ' +
                    '<button type="button" class="remove" onclick="removeBreak(\'' + b.id + '\')">Remove</button>';
                el.appendChild(div);
            });
        }

        function addBreak() {
            breaks.push({ id: String(Date.now()), start: '12:00', end: '13:00', startNext: false, endNext: false });
            renderBreaks();
        }

        function removeBreak(id) {
            breaks = breaks.filter(b => b.id !== id);
            renderBreaks();
        }

        function fmt(minutes) { return Math.floor(minutes / 60) + 'h ' + (minutes % 60) + 'm'; }

        document.getElementById('form').addEventListener('submit', async (e) => {
            e.preventDefault();
            const payload = {
                duty: {
                    startTime: clock(document.getElementById('dutyStart').value, document.getElementById('dutyStartNext').checked),
                    endTime: clock(document.getElementById('dutyEnd').value, document.getElementById('dutyEndNext').checked)
                },
                breaks: breaks.map(b => ({ id: b.id, startTime: clock(b.start, b.startNext), endTime: clock(b.end, b.endNext) }))
            };
            const res = await fetch('/api/validate', {
                method: 'POST',
                headers: {'Content-Type': 'application/json'},
                body: JSON.stringify(payload)
            });
            const el = document.getElementById('result');
            if (!res.ok) {
                el.className = 'ng';
                el.textContent = await res.text();
                return;
            }
            const data = await res.json();
            let html = '<strong>' + (data.isValid ? 'Valid duty' : 'Invalid duty') + '</strong>';
            html += '<p>Duty duration: ' + data.dutyDuration + '</p>';
            data.breakDurations.forEach(bd => {
                html += '<div>Break ' + bd.breakNumber + ': ' + (bd.duration >= 0 ? fmt(bd.duration) : '-') + '</div>';
            });
            if (data.issues.length > 0) {
                html += '<h4>Issues</h4><ul>' + data.issues.map(i => '<li>' + i + '</li>').join('') + '</ul>';
            }
            if (data.legalIssues.length > 0) {
                html += '<h4>Legal issues</h4><ul>' + data.legalIssues.map(i => '<li>' + i + '</li>').join('') + '</ul>';
            }
            el.className = data.isValid ? 'ok' : 'ng';
            el.innerHTML = html;
        });

        renderBreaks();
    </script>
</body>
</html>`
